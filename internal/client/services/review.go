package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/models"
)

var ErrEmptyComment = errors.New("comment text is empty")

type ReviewService interface {
	Reviews(ctx context.Context, bookID int) ([]models.Review, error)
	PostReview(ctx context.Context, bookID int, r models.NewReview) (*models.Review, error)
	Like(ctx context.Context, bookID, reviewID int) error
	Unlike(ctx context.Context, bookID, reviewID int) error
	Comments(ctx context.Context, reviewID int) ([]models.Comment, error)
	PostComment(ctx context.Context, reviewID int, text string) (*models.Comment, error)
}

type reviewService struct {
	api *client.Client
}

func NewReviewService(api *client.Client) ReviewService {
	return &reviewService{api: api}
}

func (s *reviewService) Reviews(ctx context.Context, bookID int) ([]models.Review, error) {
	return client.FetchAll[models.Review](ctx, s.api, reviewsPath(bookID))
}

// PostReview validates r locally before sending it.
func (s *reviewService) PostReview(ctx context.Context, bookID int, r models.NewReview) (*models.Review, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.Post(ctx, reviewsPath(bookID), r)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var out models.Review
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reviewService) Like(ctx context.Context, bookID, reviewID int) error {
	resp, err := s.api.Post(ctx, likePath(bookID, reviewID), nil)
	if err != nil {
		return err
	}
	return resp.Err()
}

func (s *reviewService) Unlike(ctx context.Context, bookID, reviewID int) error {
	return s.api.Delete(ctx, likePath(bookID, reviewID))
}

func (s *reviewService) Comments(ctx context.Context, reviewID int) ([]models.Comment, error) {
	return client.FetchAll[models.Comment](ctx, s.api, commentsPath(reviewID))
}

func (s *reviewService) PostComment(ctx context.Context, reviewID int, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	resp, err := s.api.Post(ctx, commentsPath(reviewID), map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var out models.Comment
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
