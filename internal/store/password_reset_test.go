package store

import (
	"database/sql"
	"testing"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/model"
)

func setupResetTestDB(t *testing.T) (*PasswordResetStore, *model.User, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user, err := NewUserStore(db).Create("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewPasswordResetStore(db), user, db
}

func TestPasswordResetConsume(t *testing.T) {
	rs, user, _ := setupResetTestDB(t)

	reset, err := rs.Create(user.ID)
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}
	if reset.Token == "" {
		t.Fatal("empty reset token")
	}

	got, err := rs.Consume(reset.Token)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got == nil || got.UserID != user.ID {
		t.Fatalf("got %v, want reset for user %d", got, user.ID)
	}

	// Single use
	again, err := rs.Consume(reset.Token)
	if err != nil {
		t.Fatalf("consume again: %v", err)
	}
	if again != nil {
		t.Error("reset token consumed twice")
	}
}

func TestPasswordResetUnknownToken(t *testing.T) {
	rs, _, _ := setupResetTestDB(t)

	got, err := rs.Consume("bogus")
	if err != nil {
		t.Fatalf("consume unknown: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown token, got %v", got)
	}
}

func TestPasswordResetExpired(t *testing.T) {
	rs, user, db := setupResetTestDB(t)

	reset, err := rs.Create(user.ID)
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}

	if _, err := db.Exec(`UPDATE password_resets SET expires_at = datetime('now', '-1 minute') WHERE id = ?`, reset.ID); err != nil {
		t.Fatalf("expire reset: %v", err)
	}

	got, err := rs.Consume(reset.Token)
	if err != nil {
		t.Fatalf("consume expired: %v", err)
	}
	if got != nil {
		t.Error("expired reset token accepted")
	}
}

func TestPasswordResetNewInvalidatesOld(t *testing.T) {
	rs, user, _ := setupResetTestDB(t)

	old, err := rs.Create(user.ID)
	if err != nil {
		t.Fatalf("create first reset: %v", err)
	}
	fresh, err := rs.Create(user.ID)
	if err != nil {
		t.Fatalf("create second reset: %v", err)
	}

	got, err := rs.Consume(old.Token)
	if err != nil {
		t.Fatalf("consume old: %v", err)
	}
	if got != nil {
		t.Error("superseded reset token accepted")
	}

	got, err = rs.Consume(fresh.Token)
	if err != nil {
		t.Fatalf("consume fresh: %v", err)
	}
	if got == nil {
		t.Error("fresh reset token rejected")
	}
}
