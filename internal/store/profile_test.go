package store

import (
	"testing"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/model"
)

func setupProfileTestDB(t *testing.T) (*ProfileStore, *model.User) {
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
	return NewProfileStore(db), user
}

func TestProfileCreateAndGet(t *testing.T) {
	ps, user := setupProfileTestDB(t)

	profile, err := ps.Create(user.ID, "Alice")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if profile.Name != "Alice" {
		t.Errorf("name = %q, want %q", profile.Name, "Alice")
	}
	if profile.OnboardingCompleted {
		t.Error("new profile should not have completed onboarding")
	}
	if profile.Age != nil || profile.HouseholdSize != nil {
		t.Error("age and household_size should start unset")
	}

	got, err := ps.GetByUserID(user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got == nil || got.ID != profile.ID {
		t.Fatalf("got %v, want profile %d", got, profile.ID)
	}
}

func TestProfileUpdate(t *testing.T) {
	ps, user := setupProfileTestDB(t)

	if _, err := ps.Create(user.ID, "Alice"); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	age := 34
	size := 3
	updated, err := ps.Update(user.ID, "Alice B", &age, &size, true)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice B")
	}
	if updated.Age == nil || *updated.Age != 34 {
		t.Errorf("age = %v, want 34", updated.Age)
	}
	if updated.HouseholdSize == nil || *updated.HouseholdSize != 3 {
		t.Errorf("household_size = %v, want 3", updated.HouseholdSize)
	}
	if !updated.OnboardingCompleted {
		t.Error("onboarding_completed not set")
	}

	// Clearing optional fields
	updated, err = ps.Update(user.ID, "Alice B", nil, nil, true)
	if err != nil {
		t.Fatalf("clear optional fields: %v", err)
	}
	if updated.Age != nil || updated.HouseholdSize != nil {
		t.Error("optional fields not cleared")
	}
}

func TestProfileUpdateMissing(t *testing.T) {
	ps, user := setupProfileTestDB(t)

	got, err := ps.Update(user.ID+99, "Nobody", nil, nil, false)
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing profile, got %v", got)
	}
}
