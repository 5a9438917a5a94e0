package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// LegacyFavoriteRepository implements [models.Repository] for [models.LegacyFavorite] persistence.
//
// These rows are the local fallback favorites written by releases that
// predate the remote document store. New favorites never land here; the
// table is read for display fallback and drained by the sync job.
type LegacyFavoriteRepository struct {
	db *sql.DB
}

// NewLegacyFavoriteRepository creates a new [LegacyFavoriteRepository] with the given database connection
func NewLegacyFavoriteRepository(db *sql.DB) *LegacyFavoriteRepository {
	return &LegacyFavoriteRepository{db: db}
}

// Create inserts a legacy favorite row. Duplicate category+content pairs are
// silently ignored (UNIQUE constraint), matching set semantics.
func (r *LegacyFavoriteRepository) Create(favorite *models.LegacyFavorite) error {
	sequence, err := NextSequence(r.db, "legacy_favorites")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	favorite.SetID(id)

	if err := favorite.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO legacy_favorites (id, sequence, category, content_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, string(favorite.Category()), favorite.ContentID(),
		favorite.CreatedAt(), favorite.UpdatedAt())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to insert legacy favorite: %w", err)
	}

	return nil
}

// Get retrieves a legacy favorite by ID, excluding soft-deleted rows
func (r *LegacyFavoriteRepository) Get(id string) (*models.LegacyFavorite, error) {
	query := `
		SELECT id, sequence, category, content_id, created_at, updated_at, deleted_at
		FROM legacy_favorites
		WHERE id = ? AND deleted_at IS NULL
	`

	favorite, err := scanLegacyFavorite(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("legacy favorite not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy favorite: %w", err)
	}

	return favorite, nil
}

// Update modifies an existing legacy favorite in the database
func (r *LegacyFavoriteRepository) Update(favorite *models.LegacyFavorite) error {
	if err := favorite.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	favorite.SetUpdatedAt(now)

	query := `
		UPDATE legacy_favorites
		SET category = ?, content_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, string(favorite.Category()), favorite.ContentID(), now, favorite.ID())
	if err != nil {
		return fmt.Errorf("failed to update legacy favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("legacy favorite not found or already deleted: %s", favorite.ID())
	}

	return nil
}

// Delete soft-deletes a legacy favorite by ID
func (r *LegacyFavoriteRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE legacy_favorites
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete legacy favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("legacy favorite not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all legacy favorites matching the given criteria, excluding soft-deleted rows
func (r *LegacyFavoriteRepository) List(criteria map[string]any) ([]*models.LegacyFavorite, error) {
	query := `
		SELECT id, sequence, category, content_id, created_at, updated_at, deleted_at
		FROM legacy_favorites
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if category, ok := criteria["category"].(string); ok && category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*models.LegacyFavorite
	for rows.Next() {
		favorite, err := scanLegacyFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favorites, nil
}

func scanLegacyFavorite(s scanner) (*models.LegacyFavorite, error) {
	var (
		id        string
		sequence  int
		category  string
		contentID string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &category, &contentID, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	favorite := models.NewLegacyFavorite(sequence, models.Category(category), contentID)
	favorite.SetID(id)
	favorite.SetCreatedAt(createdAt)
	favorite.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		favorite.SetDeletedAt(&deletedAt.Time)
	}

	return favorite, nil
}
