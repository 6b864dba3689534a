package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	OAuth(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Books(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Genres(ctx context.Context) error
	Authors(ctx context.Context) error

	Shelves(ctx context.Context) error
	ShelfBooks(ctx context.Context, args []string) error
	ShelfAdd(ctx context.Context, args []string) error
	ShelfRemove(ctx context.Context, args []string) error
	Stats(ctx context.Context) error

	Reviews(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Unlike(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
}

const (
	guestHelp = `Available commands:
  login | register | verify | resend | oauth google|github
  books [--all] [title] | book <id> | genres | authors
  help | exit`

	userHelp = `Available commands:
  books [--all] [title] | book <id> | genres | authors
  shelves | shelf-books <shelf> | shelf-add <shelf> <book> | shelf-remove <shelf> <book> | stats
  reviews <book> | review <book> | like <book> <review> | unlike <book> <review>
  comments <review> | comment <review>
  whoami | logout | help | exit`
)

// runREPL reads a command per line and dispatches it to a. Command errors
// are printed and the loop continues. It returns on EOF, "exit" or "quit".
// Commands that prompt read their answers from the same reader, so reader
// must not be buffered a second time.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bookup %s> ", statusFn(ctx)))
		line, rerr := reader.ReadString('\n')
		if rerr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "login":
			err = a.Login(ctx)
		case "register":
			err = a.Register(ctx)
		case "verify":
			err = a.Verify(ctx)
		case "resend":
			err = a.Resend(ctx)
		case "oauth":
			err = a.OAuth(ctx, args)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "books":
			err = a.Books(ctx, args)
		case "book":
			err = a.Book(ctx, args)
		case "genres":
			err = a.Genres(ctx)
		case "authors":
			err = a.Authors(ctx)

		case "shelves":
			err = a.Shelves(ctx)
		case "shelf-books":
			err = a.ShelfBooks(ctx, args)
		case "shelf-add":
			err = a.ShelfAdd(ctx, args)
		case "shelf-remove":
			err = a.ShelfRemove(ctx, args)
		case "stats":
			err = a.Stats(ctx)

		case "reviews":
			err = a.Reviews(ctx, args)
		case "review":
			err = a.Review(ctx, args)
		case "like":
			err = a.Like(ctx, args)
		case "unlike":
			err = a.Unlike(ctx, args)
		case "comments":
			err = a.Comments(ctx, args)
		case "comment":
			err = a.Comment(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}
