package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/models"
)

// SessionRepository persists the single cached identity session. It backs
// the services.SessionStore interface so the identity service never touches
// SQL directly.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Load returns the cached session, or nil when no session is stored.
func (r *SessionRepository) Load() (*models.Session, error) {
	query := `
		SELECT email, display_name, local_id, id_token, refresh_token, expires_at,
			created_at, updated_at
		FROM sessions
		WHERE id = 1
	`

	var (
		session     models.Session
		displayName sql.NullString
	)

	err := r.db.QueryRow(query).Scan(&session.Email, &displayName, &session.LocalID,
		&session.IDToken, &session.RefreshToken, &session.ExpiresAt,
		&session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session.DisplayName = displayName.String

	return &session, nil
}

// Save upserts the session into the single session row.
func (r *SessionRepository) Save(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, email, display_name, local_id, id_token, refresh_token,
			expires_at, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			local_id = excluded.local_id,
			id_token = excluded.id_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, session.Email, nullString(session.DisplayName),
		session.LocalID, session.IDToken, session.RefreshToken, session.ExpiresAt,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes the cached session. Clearing an empty store is not an error.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
