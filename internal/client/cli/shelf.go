package cli

import (
	"context"
	"fmt"
)

func (a *App) Shelves(ctx context.Context) error {
	shelves, err := a.shelves.Shelves(ctx)
	if err != nil {
		return err
	}
	if len(shelves) == 0 {
		fmt.Fprintln(a.out, "No shelves.")
		return nil
	}
	for _, s := range shelves {
		fmt.Fprintf(a.out, "%6d  %-24s %s\n", s.ID, s.Name, s.ShelfType)
	}
	return nil
}

func (a *App) ShelfBooks(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "shelf id")
	if err != nil {
		return usage("shelf-books <shelf>: %v", err)
	}
	books, err := a.shelves.Books(ctx, id)
	if err != nil {
		return err
	}
	a.printBooks(books)
	return nil
}

func (a *App) shelfIDs(args []string, cmd string) (int, int, error) {
	shelf, err := intArg(args, 0, "shelf id")
	if err != nil {
		return 0, 0, usage("%s <shelf> <book>: %v", cmd, err)
	}
	book, err := intArg(args, 1, "book id")
	if err != nil {
		return 0, 0, usage("%s <shelf> <book>: %v", cmd, err)
	}
	return shelf, book, nil
}

func (a *App) ShelfAdd(ctx context.Context, args []string) error {
	shelf, book, err := a.shelfIDs(args, "shelf-add")
	if err != nil {
		return err
	}
	if err := a.shelves.AddBook(ctx, shelf, book); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Book %d added to shelf %d.\n", book, shelf)
	return nil
}

func (a *App) ShelfRemove(ctx context.Context, args []string) error {
	shelf, book, err := a.shelfIDs(args, "shelf-remove")
	if err != nil {
		return err
	}
	if err := a.shelves.RemoveBook(ctx, shelf, book); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Book %d removed from shelf %d.\n", book, shelf)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.shelves.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Read:            %d\n", st.Read)
	fmt.Fprintf(a.out, "In progress:     %d\n", st.InProgress)
	fmt.Fprintf(a.out, "Want to read:    %d\n", st.WantToRead)
	if st.FavouriteGenre != "" {
		fmt.Fprintf(a.out, "Favourite genre: %s\n", st.FavouriteGenre)
	}
	return nil
}
