// Package models defines the BookUp resources exchanged with the backend:
// books, shelves, reviews and their JSON wire shapes.
package models
