package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/models"
)

type CatalogService interface {
	// Books returns one page of the catalogue matching f.
	Books(ctx context.Context, f models.BookFilter) (*client.Page[models.Book], error)
	// AllBooks follows every page of the listing matching f.
	AllBooks(ctx context.Context, f models.BookFilter) ([]models.Book, error)
	Book(ctx context.Context, id int) (*models.Book, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	Authors(ctx context.Context) ([]models.Author, error)
}

type catalogService struct {
	api *client.Client
}

func NewCatalogService(api *client.Client) CatalogService {
	return &catalogService{api: api}
}

func booksQuery(f models.BookFilter) string {
	q := url.Values{}
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	if f.ISBN != "" {
		q.Set("isbn", f.ISBN)
	}
	if f.Language != "" {
		q.Set("language", f.Language)
	}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if len(q) == 0 {
		return pathBooks
	}
	return pathBooks + "?" + q.Encode()
}

func (s *catalogService) Books(ctx context.Context, f models.BookFilter) (*client.Page[models.Book], error) {
	page, err := client.GetAs[client.Page[models.Book]](ctx, s.api, booksQuery(f))
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *catalogService) AllBooks(ctx context.Context, f models.BookFilter) ([]models.Book, error) {
	f.Page = 0
	return client.FetchAll[models.Book](ctx, s.api, booksQuery(f))
}

func (s *catalogService) Book(ctx context.Context, id int) (*models.Book, error) {
	b, err := client.GetAs[models.Book](ctx, s.api, bookPath(id))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *catalogService) Genres(ctx context.Context) ([]models.Genre, error) {
	return client.FetchAll[models.Genre](ctx, s.api, pathGenres)
}

func (s *catalogService) Authors(ctx context.Context) ([]models.Author, error) {
	return client.FetchAll[models.Author](ctx, s.api, pathAuthors)
}
