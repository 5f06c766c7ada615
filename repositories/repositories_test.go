package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/meveto/meveto-go-sdk/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := filepath.Join(t.TempDir(), "test_"+time.Now().Format("20060102150405")+".db")

	// Initialize test database using the actual migration system
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Test RecordLogin creates the row
	if err := repo.RecordLogin(ctx, "user-1"); err != nil {
		t.Fatalf("Failed to record login: %v", err)
	}

	user, err := repo.GetByIdentifier(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}

	if !user.IsLoggedIn {
		t.Error("Expected user to be logged in")
	}
	if user.LastLoggedIn == nil {
		t.Error("Expected last_logged_in to be set")
	}
	if user.LastLoggedOut != nil {
		t.Error("Expected last_logged_out to be NULL")
	}

	// Test IsLoggedIn
	loggedIn, err := repo.IsLoggedIn(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to check login state: %v", err)
	}
	if !loggedIn {
		t.Error("Expected IsLoggedIn to be true")
	}

	// Test RecordLogout
	if err := repo.RecordLogout(ctx, "user-1"); err != nil {
		t.Fatalf("Failed to record logout: %v", err)
	}

	user, err = repo.GetByIdentifier(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get user after logout: %v", err)
	}
	if user.IsLoggedIn {
		t.Error("Expected user to be logged out")
	}
	if user.LastLoggedOut == nil {
		t.Error("Expected last_logged_out to be set")
	}

	// Test RecordLogin again updates the existing row
	if err := repo.RecordLogin(ctx, "user-1"); err != nil {
		t.Fatalf("Failed to record second login: %v", err)
	}

	again, err := repo.GetByIdentifier(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get user after second login: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("Expected the same row %d, got %d", user.ID, again.ID)
	}
	if !again.IsLoggedIn {
		t.Error("Expected user to be logged in again")
	}
	if again.LastLoggedOut == nil {
		t.Error("Expected last_logged_out to be kept")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM meveto_users").Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 meveto user, got %d", count)
	}
}

func TestUserRepository_CountLoggedIn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	assertCount := func(expected int) {
		t.Helper()
		count, err := repo.CountLoggedIn(ctx)
		if err != nil {
			t.Fatalf("Failed to count logged in users: %v", err)
		}
		if count != expected {
			t.Errorf("Expected %d logged in users, got %d", expected, count)
		}
	}

	assertCount(0)

	// Repeated logins of one user count once
	for i := 0; i < 2; i++ {
		if err := repo.RecordLogin(ctx, "user-1"); err != nil {
			t.Fatalf("Failed to record login: %v", err)
		}
	}
	assertCount(1)

	if err := repo.RecordLogin(ctx, "user-2"); err != nil {
		t.Fatalf("Failed to record login: %v", err)
	}
	assertCount(2)

	// Repeated logouts never go below zero
	for i := 0; i < 3; i++ {
		if err := repo.RecordLogout(ctx, "user-1"); err != nil {
			t.Fatalf("Failed to record logout: %v", err)
		}
	}
	assertCount(1)

	if err := repo.RecordLogout(ctx, "unknown"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	assertCount(1)
}

func TestUserRepository_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	err := repo.RecordLogout(ctx, "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	_, err = repo.GetByIdentifier(ctx, "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	loggedIn, err := repo.IsLoggedIn(ctx, "ghost")
	if err != nil {
		t.Fatalf("Expected no error for unknown user, got %v", err)
	}
	if loggedIn {
		t.Error("Expected unknown user not to be logged in")
	}
}

func TestUserRepository_LoggedOutSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db).(*userRepository)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }
	if err := repo.RecordLogin(ctx, "user-2"); err != nil {
		t.Fatalf("Failed to record login: %v", err)
	}

	repo.now = func() time.Time { return base.Add(time.Hour) }
	if err := repo.RecordLogout(ctx, "user-2"); err != nil {
		t.Fatalf("Failed to record logout: %v", err)
	}

	user, err := repo.GetByIdentifier(ctx, "user-2")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}

	if !user.LoggedOutSince(base) {
		t.Error("Expected session started at login to be invalidated by logout")
	}
	if user.LoggedOutSince(base.Add(2 * time.Hour)) {
		t.Error("Expected session started after logout to stay valid")
	}
}

func TestNewRepositories(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db)

	if repos.Users == nil {
		t.Fatal("Expected Users repository to be set")
	}
}
