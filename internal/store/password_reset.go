package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cherryapp/cherry/internal/model"
	"github.com/google/uuid"
)

const resetTTL = time.Hour

type PasswordResetStore struct {
	db *sql.DB
}

func NewPasswordResetStore(db *sql.DB) *PasswordResetStore {
	return &PasswordResetStore{db: db}
}

func scanPasswordReset(scanner interface{ Scan(...any) error }) (*model.PasswordReset, error) {
	var pr model.PasswordReset
	var usedAt sql.NullTime
	err := scanner.Scan(&pr.ID, &pr.Token, &pr.UserID, &pr.ExpiresAt, &usedAt, &pr.CreatedAt)
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		pr.UsedAt = &usedAt.Time
	}
	return &pr, nil
}

const passwordResetCols = `id, token, user_id, expires_at, used_at, created_at`

// Create issues a single-use reset token valid for one hour. Any pending
// tokens for the same user are invalidated first.
func (s *PasswordResetStore) Create(userID int64) (*model.PasswordReset, error) {
	_, err := s.db.Exec(
		`UPDATE password_resets SET used_at = datetime('now') WHERE user_id = ? AND used_at IS NULL`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("invalidate previous resets: %w", err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(resetTTL)
	result, err := s.db.Exec(
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert password reset: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+passwordResetCols+` FROM password_resets WHERE id = ?`, id)
	pr, err := scanPasswordReset(row)
	if err != nil {
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return pr, nil
}

// Consume validates a token and marks it used. Returns nil when the token is
// unknown, expired, or already used.
func (s *PasswordResetStore) Consume(token string) (*model.PasswordReset, error) {
	row := s.db.QueryRow(
		`SELECT `+passwordResetCols+` FROM password_resets
		 WHERE token = ? AND used_at IS NULL AND expires_at > datetime('now')`,
		token,
	)
	pr, err := scanPasswordReset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get password reset by token: %w", err)
	}

	if _, err := s.db.Exec(`UPDATE password_resets SET used_at = datetime('now') WHERE id = ?`, pr.ID); err != nil {
		return nil, fmt.Errorf("mark reset used: %w", err)
	}
	return pr, nil
}
