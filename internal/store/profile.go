package store

import (
	"database/sql"
	"fmt"

	"github.com/cherryapp/cherry/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(scanner interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	var age, householdSize sql.NullInt64
	var onboarded int

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Name, &age, &householdSize,
		&onboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.OnboardingCompleted = onboarded != 0
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if householdSize.Valid {
		v := int(householdSize.Int64)
		p.HouseholdSize = &v
	}
	return &p, nil
}

const profileCols = `id, user_id, name, age, household_size, onboarding_completed, created_at, updated_at`

// Create inserts an empty profile for a new user. Onboarding fills it in.
func (s *ProfileStore) Create(userID int64, name string) (*model.Profile, error) {
	_, err := s.db.Exec(
		`INSERT INTO profiles (user_id, name) VALUES (?, ?)`,
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return s.GetByUserID(userID)
}

func (s *ProfileStore) GetByUserID(userID int64) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) Update(userID int64, name string, age, householdSize *int, onboardingCompleted bool) (*model.Profile, error) {
	var ageVal, sizeVal sql.NullInt64
	if age != nil {
		ageVal = sql.NullInt64{Int64: int64(*age), Valid: true}
	}
	if householdSize != nil {
		sizeVal = sql.NullInt64{Int64: int64(*householdSize), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE profiles SET name = ?, age = ?, household_size = ?, onboarding_completed = ?, updated_at = datetime('now')
		 WHERE user_id = ?`,
		name, ageVal, sizeVal, boolToInt(onboardingCompleted), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetByUserID(userID)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
