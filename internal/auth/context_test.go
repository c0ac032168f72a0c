package auth

import (
	"context"
	"testing"
)

func TestWithContextRoundTrip(t *testing.T) {
	ctx := WithContext(context.Background(), Context{UserID: 42, SessionID: 7})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context")
	}
	if ac.UserID != 42 {
		t.Errorf("UserID = %d, want 42", ac.UserID)
	}
	if ac.SessionID != 7 {
		t.Errorf("SessionID = %d, want 7", ac.SessionID)
	}
}

func TestUserIDUnauthenticated(t *testing.T) {
	if got := UserID(context.Background()); got != 0 {
		t.Errorf("UserID = %d, want 0 for empty context", got)
	}
}

func TestUserID(t *testing.T) {
	ctx := WithContext(context.Background(), Context{UserID: 9})
	if got := UserID(ctx); got != 9 {
		t.Errorf("UserID = %d, want 9", got)
	}
}
