package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/secrets/internal/constants"
)

// setupTestDB creates a SQLite database in a temp directory
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Init(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func TestInit_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := Init(path)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	first.Close()

	second, err := Init(path)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer second.Close()

	if err := second.Ping(context.Background()); err != nil {
		t.Errorf("Expected reopened database to answer, got %v", err)
	}
}

func TestDB_CreateAndGetUser(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	user := NewUser("alice@example.com", constants.ProviderLocal)
	user.Email = "alice@example.com"
	user.PasswordHash = "hash"

	if err := database.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := database.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email || byID.PasswordHash != "hash" || byID.Provider != constants.ProviderLocal {
		t.Errorf("Unexpected user %+v", byID)
	}
	if byID.GoogleID != "" || byID.FacebookID != "" {
		t.Errorf("Expected no provider ids, got %q/%q", byID.GoogleID, byID.FacebookID)
	}
	if byID.Secret != nil {
		t.Errorf("Expected new user to have no secret")
	}

	byEmail, err := database.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("Expected ID %s, got %s", user.ID, byEmail.ID)
	}
}

func TestDB_GetUserNotFound(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if _, err := database.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := database.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := database.GetUserByProviderID(ctx, constants.ProviderGoogle, "123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDB_CreateUserDuplicateEmail(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	first := NewUser("bob", constants.ProviderLocal)
	first.Email = "bob@example.com"
	if err := database.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := NewUser("bob", constants.ProviderLocal)
	second.Email = "bob@example.com"
	err := database.CreateUser(ctx, second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestDB_UsersWithoutEmailDoNotCollide(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	for i, id := range []string{"fb-1", "fb-2"} {
		user := NewUser("Facebook User", constants.ProviderFacebook)
		user.FacebookID = id
		if err := database.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser %d failed: %v", i, err)
		}
	}

	found, err := database.GetUserByProviderID(ctx, constants.ProviderFacebook, "fb-2")
	if err != nil {
		t.Fatalf("GetUserByProviderID failed: %v", err)
	}
	if found.Email != "" {
		t.Errorf("Expected empty email, got %q", found.Email)
	}
}

func TestDB_DuplicateProviderID(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	first := NewUser("Google User", constants.ProviderGoogle)
	first.GoogleID = "g-1"
	if err := database.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := NewUser("Google User", constants.ProviderGoogle)
	second.GoogleID = "g-1"
	if err := database.CreateUser(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestDB_GetUserByProviderIDUnsupported(t *testing.T) {
	database := setupTestDB(t)

	if _, err := database.GetUserByProviderID(context.Background(), "github", "1"); err == nil {
		t.Fatal("Expected error for unsupported provider")
	}
}

func TestDB_UpdateSecretAndList(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	withSecret := NewUser("carol", constants.ProviderLocal)
	withSecret.Email = "carol@example.com"
	withoutSecret := NewUser("dave", constants.ProviderLocal)
	withoutSecret.Email = "dave@example.com"
	for _, u := range []*User{withSecret, withoutSecret} {
		if err := database.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	secrets, err := database.ListSecrets(ctx)
	if err != nil {
		t.Fatalf("ListSecrets failed: %v", err)
	}
	if len(secrets) != 0 {
		t.Fatalf("Expected no secrets, got %v", secrets)
	}

	if err := database.UpdateSecret(ctx, withSecret.ID, "first"); err != nil {
		t.Fatalf("UpdateSecret failed: %v", err)
	}
	// Last write wins
	if err := database.UpdateSecret(ctx, withSecret.ID, "I like pineapple pizza"); err != nil {
		t.Fatalf("UpdateSecret failed: %v", err)
	}

	secrets, err = database.ListSecrets(ctx)
	if err != nil {
		t.Fatalf("ListSecrets failed: %v", err)
	}
	if len(secrets) != 1 || secrets[0] != "I like pineapple pizza" {
		t.Errorf("Expected single overwritten secret, got %v", secrets)
	}

	stored, err := database.GetUserByID(ctx, withSecret.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if stored.Secret == nil || *stored.Secret != "I like pineapple pizza" {
		t.Errorf("Expected stored secret, got %v", stored.Secret)
	}
}

func TestDB_UpdateSecretUnknownUser(t *testing.T) {
	database := setupTestDB(t)

	err := database.UpdateSecret(context.Background(), "missing", "secret")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDB_Rebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect
		query   string
		want    string
	}{
		{
			name:    "sqlite keeps placeholders",
			dialect: dialectSQLite,
			query:   "SELECT * FROM users WHERE id = ? AND email = ?",
			want:    "SELECT * FROM users WHERE id = ? AND email = ?",
		},
		{
			name:    "postgres numbers placeholders",
			dialect: dialectPostgres,
			query:   "UPDATE users SET secret = ?, updated_at = ? WHERE id = ?",
			want:    "UPDATE users SET secret = $1, updated_at = $2 WHERE id = $3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &DB{dialect: tt.dialect}
			if got := db.rebind(tt.query); got != tt.want {
				t.Errorf("rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBackendName(t *testing.T) {
	tests := map[string]string{
		"mongodb://localhost:27017":         "mongodb",
		"mongodb+srv://cluster.example.com": "mongodb",
		"postgres://localhost/secrets":      "postgres",
		"postgresql://localhost/secrets":    "postgres",
		"./data/secrets.db":                 "sqlite",
		"":                                  "sqlite",
	}

	for url, want := range tests {
		if got := BackendName(url); got != want {
			t.Errorf("BackendName(%q) = %q, want %q", url, got, want)
		}
	}
}
