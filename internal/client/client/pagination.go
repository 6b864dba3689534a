package client

import (
	"context"
	"fmt"
)

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// FetchAll starts at firstPath and follows next links until one is null,
// returning every result in page order. next links are absolute and used as
// they come, but only on the backend's origin (ErrForeignPage otherwise). A
// repeated link stops with ErrPaginationCycle, more than the configured
// page limit with ErrTooManyPages. Any page error aborts the whole fetch.
func FetchAll[T any](ctx context.Context, c *Client, firstPath string) ([]T, error) {
	var all []T
	seen := make(map[string]struct{})

	next := firstPath
	for pages := 0; ; pages++ {
		if pages >= c.maxPages {
			return nil, fmt.Errorf("%w: stopped after %d pages", ErrTooManyPages, pages)
		}

		target, err := c.Resolve(next)
		if err != nil {
			return nil, err
		}
		if !c.sameOrigin(target) {
			return nil, fmt.Errorf("%w: %s", ErrForeignPage, target)
		}
		if _, ok := seen[target]; ok {
			return nil, fmt.Errorf("%w: %s", ErrPaginationCycle, target)
		}
		seen[target] = struct{}{}

		page, err := GetAs[Page[T]](ctx, c, target)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)

		if page.Next == nil || *page.Next == "" {
			return all, nil
		}
		next = *page.Next
	}
}
