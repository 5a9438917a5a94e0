package models

import "fmt"

// Review is a locally stored review submission. Submissions are kept in the
// fallback SQLite database and never forwarded to a remote service.
type Review struct {
	base
	name    string
	email   string
	subject string
	body    string
	rating  int
}

// NewReview creates a review submission with timestamps set to now.
// Email is optional; rating 0 means unrated.
func NewReview(sequence int, name, email, subject, body string, rating int) *Review {
	return &Review{
		base:    newBase(sequence),
		name:    name,
		email:   email,
		subject: subject,
		body:    body,
		rating:  rating,
	}
}

func (r *Review) Name() string    { return r.name }
func (r *Review) Email() string   { return r.email }
func (r *Review) Subject() string { return r.subject }
func (r *Review) Body() string    { return r.body }
func (r *Review) Rating() int     { return r.rating }

// Validate checks required fields and the rating range.
func (r *Review) Validate() error {
	if r.name == "" {
		return fmt.Errorf("review requires a name")
	}
	if r.subject == "" {
		return fmt.Errorf("review requires a subject")
	}
	if r.body == "" {
		return fmt.Errorf("review requires a body")
	}
	if r.rating < 0 || r.rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %d", r.rating)
	}
	if r.email != "" && !ValidEmail(r.email) {
		return fmt.Errorf("invalid email address: %s", r.email)
	}
	return nil
}
