package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/models"
)

type ShelfService interface {
	Shelves(ctx context.Context) ([]models.Shelf, error)
	AddBook(ctx context.Context, shelfID, bookID int) error
	RemoveBook(ctx context.Context, shelfID, bookID int) error
	Books(ctx context.Context, shelfID int) ([]models.Book, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type shelfService struct {
	api *client.Client
}

func NewShelfService(api *client.Client) ShelfService {
	return &shelfService{api: api}
}

type bookRef struct {
	BookID int `json:"book_id"`
}

func (s *shelfService) Shelves(ctx context.Context) ([]models.Shelf, error) {
	return client.FetchAll[models.Shelf](ctx, s.api, pathShelves)
}

func (s *shelfService) AddBook(ctx context.Context, shelfID, bookID int) error {
	return s.move(ctx, shelfID, bookID, "add_book")
}

func (s *shelfService) RemoveBook(ctx context.Context, shelfID, bookID int) error {
	return s.move(ctx, shelfID, bookID, "remove_book")
}

func (s *shelfService) move(ctx context.Context, shelfID, bookID int, action string) error {
	resp, err := s.api.Post(ctx, shelfPath(shelfID, action), bookRef{BookID: bookID})
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("%s on shelf %d: %w", action, shelfID, err)
	}
	return nil
}

func (s *shelfService) Books(ctx context.Context, shelfID int) ([]models.Book, error) {
	return client.FetchAll[models.Book](ctx, s.api, shelfPath(shelfID, "books"))
}

func (s *shelfService) Stats(ctx context.Context) (*models.Stats, error) {
	st, err := client.GetAs[models.Stats](ctx, s.api, pathStats)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
