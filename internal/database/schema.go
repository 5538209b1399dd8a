package database

import (
	"context"
	"fmt"
	"strings"
)

// table DDL keyed by dialect. Primary keys and timestamp types differ; the
// columns and constraints are the same on both backends.
type tableDef struct {
	name     string
	sqlite   string
	postgres string
}

var tables = []tableDef{
	{
		name: "users",
		sqlite: `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    role TEXT DEFAULT 'user',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
		postgres: `CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    role TEXT DEFAULT 'user',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		name: "clients",
		sqlite: `CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    address TEXT,
    nationality TEXT,
    notes TEXT,
    cpf TEXT,
    birth_date TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
		postgres: `CREATE TABLE IF NOT EXISTS clients (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    address TEXT,
    nationality TEXT,
    notes TEXT,
    cpf TEXT,
    birth_date TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		name: "hotels",
		sqlite: `CREATE TABLE IF NOT EXISTS hotels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    location TEXT,
    address TEXT,
    phone TEXT,
    email TEXT,
    website TEXT,
    pix TEXT,
    notes TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
		postgres: `CREATE TABLE IF NOT EXISTS hotels (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    location TEXT,
    address TEXT,
    phone TEXT,
    email TEXT,
    website TEXT,
    pix TEXT,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		name: "trips",
		sqlite: `CREATE TABLE IF NOT EXISTS trips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    price REAL NOT NULL,
    hotel_id INTEGER,
    max_participants INTEGER,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (hotel_id) REFERENCES hotels(id)
)`,
		postgres: `CREATE TABLE IF NOT EXISTS trips (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    hotel_id INTEGER,
    max_participants INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (hotel_id) REFERENCES hotels(id)
)`,
	},
	{
		name: "bookings",
		sqlite: `CREATE TABLE IF NOT EXISTS bookings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    client_id INTEGER NOT NULL,
    trip_id INTEGER NOT NULL,
    booking_date DATE NOT NULL,
    status TEXT DEFAULT 'pending',
    participants INTEGER DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id),
    FOREIGN KEY (trip_id) REFERENCES trips(id)
)`,
		postgres: `CREATE TABLE IF NOT EXISTS bookings (
    id SERIAL PRIMARY KEY,
    client_id INTEGER NOT NULL,
    trip_id INTEGER NOT NULL,
    booking_date DATE NOT NULL,
    status TEXT DEFAULT 'pending',
    participants INTEGER DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id),
    FOREIGN KEY (trip_id) REFERENCES trips(id)
)`,
	},
}

// addedColumns were introduced after the first schema and are added to
// databases created before them.
var addedColumns = []struct{ table, column, typ string }{
	{"users", "role", "TEXT DEFAULT 'user'"},
	{"clients", "nationality", "TEXT"},
	{"clients", "notes", "TEXT"},
	{"clients", "cpf", "TEXT"},
	{"clients", "birth_date", "TEXT"},
	{"hotels", "website", "TEXT"},
	{"hotels", "pix", "TEXT"},
	{"hotels", "notes", "TEXT"},
}

// Migrate creates missing tables and adds missing columns. It never drops
// or rewrites anything and can run on every startup.
func Migrate(ctx context.Context, db DB) error {
	for _, t := range tables {
		ddl := t.sqlite
		if db.Dialect() == DialectPostgres {
			ddl = t.postgres
		}
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	for _, c := range addedColumns {
		if err := addColumn(ctx, db, c.table, c.column, c.typ); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

func addColumn(ctx context.Context, db DB, table, column, typ string) error {
	if db.Dialect() == DialectPostgres {
		_, err := db.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, column, typ))
		return err
	}
	// SQLite has no conditional ADD COLUMN.
	_, err := db.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typ))
	if err != nil && isDuplicateColumn(err) {
		return nil
	}
	return err
}

func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
