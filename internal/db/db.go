package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/secrets/internal/constants"
	_ "modernc.org/sqlite"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

const userColumns = "id, name, email, password_hash, google_id, facebook_id, provider, secret, created_at, updated_at"

// DB wraps a SQL database connection. SQLite is the default backend,
// PostgreSQL shares the same queries through placeholder rebinding.
type DB struct {
	*sql.DB
	dialect dialect
}

// Init opens (creating if needed) the SQLite database at dbPath and runs migrations
func Init(dbPath string) (*DB, error) {
	// Ensure data directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway; a single connection avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, dialect: dialectSQLite}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// migrate runs the SQLite schema migrations
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT,
			password_hash TEXT,
			google_id TEXT,
			facebook_id TEXT,
			provider TEXT NOT NULL,
			secret TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE email IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id ON users(google_id) WHERE google_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_facebook_id ON users(facebook_id) WHERE facebook_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_users_secret ON users(updated_at) WHERE secret IS NOT NULL`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// Ping verifies the connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// CreateUser creates a new user
func (db *DB) CreateUser(ctx context.Context, user *User) error {
	_, err := db.ExecContext(ctx,
		db.rebind("INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		user.ID, user.Name, nullString(user.Email), nullString(user.PasswordHash),
		nullString(user.GoogleID), nullString(user.FacebookID), user.Provider,
		user.Secret, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if db.isUniqueViolation(err) {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (db *DB) GetUserByID(ctx context.Context, id string) (*User, error) {
	row := db.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email (the login name of local accounts)
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	return scanUser(row)
}

// GetUserByProviderID retrieves a user by its OAuth provider identifier
func (db *DB) GetUserByProviderID(ctx context.Context, provider, providerID string) (*User, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE "+column+" = ?"), providerID)
	return scanUser(row)
}

// UpdateSecret overwrites the secret of a user
func (db *DB) UpdateSecret(ctx context.Context, id, secret string) error {
	result, err := db.ExecContext(ctx,
		db.rebind("UPDATE users SET secret = ?, updated_at = ? WHERE id = ?"),
		secret, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("update secret for %s: %w", id, ErrNotFound)
	}

	return nil
}

// ListSecrets retrieves every submitted secret
func (db *DB) ListSecrets(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT secret FROM users WHERE secret IS NOT NULL ORDER BY updated_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	secrets := []string{}
	for rows.Next() {
		var secret string
		if err := rows.Scan(&secret); err != nil {
			return nil, err
		}
		secrets = append(secrets, secret)
	}

	return secrets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var email, passwordHash, googleID, facebookID, secret sql.NullString

	err := row.Scan(&user.ID, &user.Name, &email, &passwordHash, &googleID, &facebookID,
		&user.Provider, &secret, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Email = email.String
	user.PasswordHash = passwordHash.String
	user.GoogleID = googleID.String
	user.FacebookID = facebookID.String
	if secret.Valid {
		user.Secret = &secret.String
	}

	return user, nil
}

// rebind rewrites ? placeholders into $n for PostgreSQL
func (db *DB) rebind(query string) string {
	if db.dialect != dialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) isUniqueViolation(err error) bool {
	if db.dialect == dialectPostgres {
		return isPostgresUniqueViolation(err)
	}
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique constraint failed")
}

func providerColumn(provider string) (string, error) {
	switch provider {
	case constants.ProviderGoogle:
		return "google_id", nil
	case constants.ProviderFacebook:
		return "facebook_id", nil
	default:
		slog.Warn("lookup with unsupported provider", "provider", provider)
		return "", fmt.Errorf("unsupported provider %q", provider)
	}
}

// nullString maps "absent" to SQL NULL so partial unique indexes skip it
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
