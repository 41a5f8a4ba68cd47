package models

import "time"

// Classification is a single labeling event: one user assigned one stage
// label (with an optional observation) to one stored image.
//
// Many classifications may reference the same image — the same or different
// users may label an image repeatedly, and every submission is an independent
// row. Deleting an image cascades and removes its classifications; deleting a
// user removes the classifications they authored.
type Classification struct {
	// ClassificationID is the internal unique identifier of the record.
	ClassificationID int64 `json:"id"`

	// UserID is the ID of the user who authored the classification.
	UserID int64 `json:"user_id"`

	// ImageID is the ID of the classified image.
	ImageID int64 `json:"image_id"`

	// Stage is the assigned label. Must be a member of the stage set
	// configured at startup.
	Stage string `json:"stage"`

	// Observations is an optional free-text note about the classification.
	Observations string `json:"observations,omitempty"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the most recent edit.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Classification model.
func (c Classification) TableName() string {
	return "classifications"
}

// ClassificationUpdate describes a partial update of a classification.
// Nil fields are left unchanged.
type ClassificationUpdate struct {
	ClassificationID int64   `json:"-"`
	Stage            *string `json:"stage,omitempty"`
	Observations     *string `json:"observations,omitempty"`
}

// ClassificationFilter narrows a classification listing.
// Zero values mean "no restriction" for the corresponding field.
type ClassificationFilter struct {
	ImageID int64
	Stage   string
	UserID  int64
	Page    int
	Limit   int
}

// Offset returns the row offset implied by Page and Limit.
func (f ClassificationFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}
