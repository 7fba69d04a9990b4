// Package storage provides the SQLite-backed session store. The schema
// is managed by golang-migrate with embedded migrations, mirroring the
// two persisted values (token and user profile) as rows in a small
// key/value table.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tosmel2/Monivoza/internal/core"
	"github.com/Tosmel2/Monivoza/internal/session"

	_ "modernc.org/sqlite"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

var _ session.Store = (*SQLiteSessionStore)(nil)

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSessionStore{db: db}, nil
}

func (s *SQLiteSessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSessionStore) Load() (session.Session, bool, error) {
	token, err := s.get(session.KeyToken)
	if err != nil {
		return session.Session{}, false, err
	}
	userJSON, err := s.get(session.KeyUser)
	if err != nil {
		return session.Session{}, false, err
	}
	if token == "" || userJSON == "" {
		return session.Session{}, false, nil
	}

	var user core.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return session.Session{}, false, fmt.Errorf("decode stored user: %w", err)
	}
	return session.Session{Token: token, User: user}, true, nil
}

func (s *SQLiteSessionStore) Save(sess session.Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, session.KeyToken, sess.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if _, err := tx.Exec(upsert, session.KeyUser, string(userJSON)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteSessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session_state WHERE key IN (?, ?)`,
		session.KeyToken, session.KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}
