package oauth

import (
	"context"
	"fmt"
	"io"
)

// Navigator sends the user to an external URL.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

type NavigatorFunc func(ctx context.Context, url string) error

func (f NavigatorFunc) Navigate(ctx context.Context, url string) error {
	return f(ctx, url)
}

// WriterNavigator prints the URL for the user to open by hand.
type WriterNavigator struct {
	W io.Writer
}

func (n WriterNavigator) Navigate(_ context.Context, url string) error {
	_, err := fmt.Fprintf(n.W, "Open this URL in your browser to continue:\n  %s\n", url)
	return err
}
