package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/auth"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCategoryExists is returned when a category id is already taken.
	ErrCategoryExists = errors.New("category already exists")
)

// Store wraps a SQLite database holding categories, photos, posts, the about
// document and admin accounts. Every mutation is a single statement.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// DSN pragmas run on every pooled connection, not just the first.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, err
	}
	// WAL lets the public GET handlers read while an upload is writing.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS photos (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    original_url TEXT NOT NULL,
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_photos_date ON photos(date);
CREATE INDEX IF NOT EXISTS idx_photos_category ON photos(category);

CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    cover_image TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    slug TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date);
CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug);

CREATE TABLE IF NOT EXISTS about (
    singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
    image_url TEXT NOT NULL,
    paragraph1 TEXT NOT NULL,
    paragraph2 TEXT NOT NULL,
    paragraph3 TEXT NOT NULL,
    experience TEXT NOT NULL,
    projects TEXT NOT NULL,
    awards TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts c, returning ErrCategoryExists if the id is taken.
func (s *Store) CreateCategory(c Category) error {
	res, err := s.db.Exec(`INSERT INTO categories (id, name) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, c.ID, c.Name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryExists
	}
	return nil
}

// SeedCategories inserts defaults when the categories table is empty.
// It reports whether anything was inserted.
func (s *Store) SeedCategories(defaults []Category) (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	for _, c := range defaults {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

// GetAdmin returns the admin account for username.
func (s *Store) GetAdmin(username string) (Admin, error) {
	a := Admin{Username: username}
	err := s.db.QueryRow(`SELECT password_hash, created_at FROM admins WHERE username = ?`, username).
		Scan(&a.PasswordHash, &a.CreatedAt)
	if isNoRows(err) {
		return Admin{}, ErrNotFound
	}
	return a, err
}

// CreateAdmin inserts an admin account if the username is free and reports
// whether a row was written.
func (s *Store) CreateAdmin(a Admin) (bool, error) {
	res, err := s.db.Exec(`INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?) ON CONFLICT(username) DO NOTHING`,
		a.Username, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetAdminPassword creates the account or replaces its password hash.
func (s *Store) SetAdminPassword(a Admin) error {
	_, err := s.db.Exec(`INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)
ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash`,
		a.Username, a.PasswordHash, a.CreatedAt)
	return err
}

// SetAdminCredentials hashes password and creates the admin account or
// replaces its password.
func (s *Store) SetAdminCredentials(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.SetAdminPassword(Admin{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    formatTime(time.Now()),
	})
}

// CountAdmins returns the number of admin accounts.
func (s *Store) CountAdmins() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
