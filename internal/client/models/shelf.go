package models

import "time"

type ShelfType string

const (
	ShelfRead       ShelfType = "read"
	ShelfInProgress ShelfType = "in_progress"
	ShelfWantToRead ShelfType = "want_to_read"
	ShelfCustom     ShelfType = "custom"
)

type Shelf struct {
	ID        int       `json:"id"`
	User      int       `json:"user"`
	Name      string    `json:"name"`
	ShelfType ShelfType `json:"shelf_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats is the reading summary of the signed-in user.
type Stats struct {
	Read           int    `json:"read"`
	InProgress     int    `json:"in_progess"`
	WantToRead     int    `json:"want_to_read"`
	FavouriteGenre string `json:"favourite_genre"`
}
