package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/kitesurf-admin/internal/database"
)

const (
	sqliteSessionTable = `CREATE TABLE IF NOT EXISTS user_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sid TEXT UNIQUE NOT NULL,
    sess TEXT NOT NULL,
    expire BIGINT NOT NULL
)`
	postgresSessionTable = `CREATE TABLE IF NOT EXISTS user_sessions (
    id SERIAL PRIMARY KEY,
    sid TEXT UNIQUE NOT NULL,
    sess TEXT NOT NULL,
    expire BIGINT NOT NULL
)`
	sessionExpireIndex = `CREATE INDEX IF NOT EXISTS idx_user_sessions_expire ON user_sessions (expire)`
)

// SQLStore keeps sessions in the user_sessions table of the main database so
// they survive restarts and are shared by every instance behind the proxy.
type SQLStore struct {
	db  database.DB
	now func() time.Time
}

func NewSQLStore(db database.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Init creates the session table when it does not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	ddl := sqliteSessionTable
	if s.db.Dialect() == database.DialectPostgres {
		ddl = postgresSessionTable
	}
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create user_sessions: %w", err)
	}
	if _, err := s.db.Exec(ctx, sessionExpireIndex); err != nil {
		return fmt.Errorf("index user_sessions: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, sid string) (*Data, error) {
	row, err := s.db.QueryOne(ctx, "SELECT sess, expire FROM user_sessions WHERE sid = ?", sid)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	if row.Int64("expire") <= s.now().Unix() {
		return nil, s.Destroy(ctx, sid)
	}
	var d Data
	if err := json.Unmarshal([]byte(row.String("sess")), &d); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if d.Expired(s.now()) {
		return nil, nil
	}
	return &d, nil
}

func (s *SQLStore) Save(ctx context.Context, sid string, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO user_sessions (sid, sess, expire) VALUES (?, ?, ?)
ON CONFLICT (sid) DO UPDATE SET sess = excluded.sess, expire = excluded.expire`,
		sid, string(raw), d.ExpiresAt.Unix())
	return err
}

func (s *SQLStore) Destroy(ctx context.Context, sid string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM user_sessions WHERE sid = ?", sid)
	return err
}

// Prune deletes expired rows and returns how many were removed.
func (s *SQLStore) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.Exec(ctx, "DELETE FROM user_sessions WHERE expire <= ?", s.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
