package models

import (
	"strings"
)

type Genre struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type Author struct {
	ID         int    `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Bio        string `json:"bio"`
	BirthDate  Date   `json:"birth_date"`
	DeathDate  Date   `json:"death_date"`
}

// FullName joins the non-empty name parts.
func (a Author) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ISBN        string   `json:"isbn"`
	Language    string   `json:"language"`
	PageCount   *int     `json:"page_count"`
	PublishedAt Date     `json:"published_at"`
	Genres      []Genre  `json:"genres"`
	Authors     []Author `json:"authors"`
}

// AuthorNames returns "First Last, First Last" for display.
func (b Book) AuthorNames() string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		if n := a.FullName(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

func (b Book) GenreNames() string {
	names := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// BookFilter narrows a book listing. Zero fields are not sent.
type BookFilter struct {
	Title    string
	ISBN     string
	Language string
	Genre    string
	Page     int
}
