package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// ReviewRepository implements [models.Repository] for [models.Review] persistence.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new [ReviewRepository] with the given database connection
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review into the database with generated ID and sequence
func (r *ReviewRepository) Create(review *models.Review) error {
	sequence, err := NextSequence(r.db, "reviews")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	review.SetID(id)

	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO reviews (id, sequence, name, email, subject, body, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var email any = review.Email()
	if email == "" {
		email = nil
	}

	_, err = r.db.Exec(query, id, sequence, review.Name(), email, review.Subject(),
		review.Body(), review.Rating(), review.CreatedAt(), review.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// Get retrieves a review by ID, excluding soft-deleted reviews
func (r *ReviewRepository) Get(id string) (*models.Review, error) {
	query := `
		SELECT id, sequence, name, email, subject, body, rating, created_at, updated_at, deleted_at
		FROM reviews
		WHERE id = ? AND deleted_at IS NULL
	`

	review, err := scanReview(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return review, nil
}

// Update modifies an existing review in the database
func (r *ReviewRepository) Update(review *models.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	review.SetUpdatedAt(now)

	query := `
		UPDATE reviews
		SET name = ?, email = ?, subject = ?, body = ?, rating = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var email any = review.Email()
	if email == "" {
		email = nil
	}

	result, err := r.db.Exec(query, review.Name(), email, review.Subject(),
		review.Body(), review.Rating(), now, review.ID())
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found or already deleted: %s", review.ID())
	}

	return nil
}

// Delete soft-deletes a review by ID
func (r *ReviewRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE reviews
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all reviews matching the given criteria, excluding soft-deleted reviews
func (r *ReviewRepository) List(criteria map[string]any) ([]*models.Review, error) {
	query := `
		SELECT id, sequence, name, email, subject, body, rating, created_at, updated_at, deleted_at
		FROM reviews
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if email, ok := criteria["email"].(string); ok && email != "" {
		query += " AND email = ?"
		args = append(args, email)
	}
	if subject, ok := criteria["subject"].(string); ok && subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return reviews, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (*models.Review, error) {
	var (
		id        string
		sequence  int
		name      string
		email     sql.NullString
		subject   string
		body      string
		rating    int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &name, &email, &subject, &body, &rating, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	review := models.NewReview(sequence, name, email.String, subject, body, rating)
	review.SetID(id)
	review.SetCreatedAt(createdAt)
	review.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		review.SetDeletedAt(&deletedAt.Time)
	}

	return review, nil
}
