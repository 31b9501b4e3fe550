// Package achievements implements the achievement records that are the
// heart of Tracend: dated accomplishments with a rich-text description, an
// impact statement, and search keywords. Every achievement belongs to
// exactly one user; no operation in this package crosses an owner boundary.
package achievements

import "time"

// Achievement represents a single achievement record.
type Achievement struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"` // Owner — resolved from the token, never serialized.
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"` // Sanitized rich text (HTML).
	Impact      string     `json:"impact"`
	Keywords    string     `json:"keywords"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// --- Request DTOs ---

// CreateAchievementRequest holds the data submitted when adding an
// achievement. Any client-supplied owner field is ignored: the owner is
// always the authenticated user.
type CreateAchievementRequest struct {
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Keywords    string     `json:"keywords"`
}

// UpdateAchievementRequest holds the data submitted when updating an
// achievement. All fields are replaced, matching the frontend's edit form.
type UpdateAchievementRequest struct {
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Keywords    string     `json:"keywords"`
}
