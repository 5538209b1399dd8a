package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT * FROM users", "SELECT * FROM users"},
		{"sequential", "UPDATE users SET username = ?, role = ? WHERE id = ?", "UPDATE users SET username = $1, role = $2 WHERE id = $3"},
		{"quoted literal", "SELECT '?' AS q, id FROM users WHERE id = ?", "SELECT '?' AS q, id FROM users WHERE id = $1"},
		{"escaped quote", "SELECT 'it''s ?' FROM t WHERE a = ?", "SELECT 'it''s ?' FROM t WHERE a = $1"},
		{"quoted identifier", `SELECT "what?" FROM t WHERE a = ?`, `SELECT "what?" FROM t WHERE a = $1`},
		{"comment", "SELECT 1 -- why?\nFROM t WHERE a = ?", "SELECT 1 -- why?\nFROM t WHERE a = $1"},
		{"trailing comment", "SELECT ? -- ok?", "SELECT $1 -- ok?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rebind(tc.in))
		})
	}
}

func TestWithReturningID(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO clients (name) VALUES (?) RETURNING id",
		withReturningID("INSERT INTO clients (name) VALUES (?);"))
	assert.Equal(t,
		"insert into t (a) values (1) returning a",
		withReturningID("insert into t (a) values (1) returning a"))
	assert.Equal(t, "DELETE FROM t", withReturningID("DELETE FROM t"))
}

func TestIsInsert(t *testing.T) {
	assert.True(t, isInsert("  insert into t values (1)"))
	assert.False(t, isInsert("SELECT 1"))
	assert.False(t, isInsert("INS"))
}
