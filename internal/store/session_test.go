package store

import (
	"database/sql"
	"testing"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/model"
)

func setupSessionTestDB(t *testing.T) (*SessionStore, *model.User, *sql.DB) {
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
	return NewSessionStore(db), user, db
}

func TestSessionCreateAndLookup(t *testing.T) {
	ss, user, _ := setupSessionTestDB(t)

	sess, err := ss.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != user.ID {
		t.Fatalf("got %v, want session for user %d", got, user.ID)
	}

	missing, err := ss.GetByToken("not-a-token")
	if err != nil {
		t.Fatalf("get unknown token: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown token, got %v", missing)
	}
}

func TestSessionExpiry(t *testing.T) {
	ss, user, db := setupSessionTestDB(t)

	sess, err := ss.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := db.Exec(`UPDATE sessions SET expires_at = datetime('now', '-1 hour') WHERE id = ?`, sess.ID); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got != nil {
		t.Error("expired session still resolvable")
	}

	deleted, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestSessionDeleteForUser(t *testing.T) {
	ss, user, _ := setupSessionTestDB(t)

	first, _ := ss.Create(user.ID)
	second, _ := ss.Create(user.ID)

	if err := ss.DeleteForUser(user.ID); err != nil {
		t.Fatalf("delete for user: %v", err)
	}

	for _, token := range []string{first.Token, second.Token} {
		got, err := ss.GetByToken(token)
		if err != nil {
			t.Fatalf("get by token: %v", err)
		}
		if got != nil {
			t.Error("session survived DeleteForUser")
		}
	}
}
