package models

import (
	"errors"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	ID            int       `json:"id"`
	User          int       `json:"user"`
	Rating        *int      `json:"rating"`
	Text          string    `json:"text"`
	HasSpoilers   bool      `json:"has_spoilers"`
	IsPublic      bool      `json:"is_public"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewReview is the body of a review submission. A nil Rating leaves the
// book unrated.
type NewReview struct {
	Rating      *int   `json:"rating"`
	Text        string `json:"text"`
	HasSpoilers bool   `json:"has_spoilers"`
	IsPublic    bool   `json:"is_public"`
}

func (r NewReview) Validate() error {
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

type Comment struct {
	ID        int       `json:"id"`
	User      int       `json:"user"`
	Review    int       `json:"review"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
