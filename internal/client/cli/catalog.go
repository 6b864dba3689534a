package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookup/internal/client/models"
)

func (a *App) printBooks(books []models.Book) {
	if len(books) == 0 {
		fmt.Fprintln(a.out, "No books.")
		return
	}
	for _, b := range books {
		line := fmt.Sprintf("%6d  %s", b.ID, b.Title)
		if names := b.AuthorNames(); names != "" {
			line += " by " + names
		}
		fmt.Fprintln(a.out, line)
	}
}

// Books lists the first page of the catalogue, optionally filtered by title.
// With --all every page is fetched.
func (a *App) Books(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "--all" {
		books, err := a.catalog.AllBooks(ctx, models.BookFilter{Title: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		a.printBooks(books)
		return nil
	}

	page, err := a.catalog.Books(ctx, models.BookFilter{Title: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	a.printBooks(page.Results)
	if page.Next != nil {
		fmt.Fprintf(a.out, "Showing %d of %d.\n", len(page.Results), page.Count)
	}
	return nil
}

func (a *App) Book(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "book id")
	if err != nil {
		return usage("book <id>: %v", err)
	}
	b, err := a.catalog.Book(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", b.Title)
	if names := b.AuthorNames(); names != "" {
		fmt.Fprintf(a.out, "  by %s\n", names)
	}
	if g := b.GenreNames(); g != "" {
		fmt.Fprintf(a.out, "  genres:    %s\n", g)
	}
	if b.ISBN != "" {
		fmt.Fprintf(a.out, "  isbn:      %s\n", b.ISBN)
	}
	if b.Language != "" {
		fmt.Fprintf(a.out, "  language:  %s\n", b.Language)
	}
	if b.PageCount != nil {
		fmt.Fprintf(a.out, "  pages:     %d\n", *b.PageCount)
	}
	if !b.PublishedAt.IsZero() {
		fmt.Fprintf(a.out, "  published: %s\n", b.PublishedAt)
	}
	if b.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", b.Description)
	}
	return nil
}

func (a *App) Authors(ctx context.Context) error {
	authors, err := a.catalog.Authors(ctx)
	if err != nil {
		return err
	}
	if len(authors) == 0 {
		fmt.Fprintln(a.out, "No authors.")
		return nil
	}
	for _, au := range authors {
		fmt.Fprintf(a.out, "%6d  %s\n", au.ID, au.FullName())
	}
	return nil
}

func (a *App) Genres(ctx context.Context) error {
	genres, err := a.catalog.Genres(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	fmt.Fprintln(a.out, strings.Join(names, ", "))
	return nil
}
