package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookup/internal/client/models"
)

func (a *App) Reviews(ctx context.Context, args []string) error {
	book, err := intArg(args, 0, "book id")
	if err != nil {
		return usage("reviews <book>: %v", err)
	}
	reviews, err := a.reviews.Reviews(ctx, book)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}

	for _, r := range reviews {
		rating := "-"
		if r.Rating != nil {
			rating = strings.Repeat("*", *r.Rating)
		}
		fmt.Fprintf(a.out, "#%d  %-5s  %d likes, %d comments\n", r.ID, rating, r.LikesCount, r.CommentsCount)
		if r.HasSpoilers {
			fmt.Fprintln(a.out, "    [contains spoilers]")
			continue
		}
		for _, line := range strings.Split(r.Text, "\n") {
			fmt.Fprintf(a.out, "    %s\n", line)
		}
	}
	return nil
}

func (a *App) Review(ctx context.Context, args []string) error {
	book, err := intArg(args, 0, "book id")
	if err != nil {
		return usage("review <book>: %v", err)
	}

	var nr models.NewReview
	if nr.Rating, err = GetOptionalInt(a.reader, "Rating", 1, 5, a.out); err != nil {
		return err
	}
	if nr.Text, err = GetMultiline(a.reader, "Review text", a.out); err != nil {
		return err
	}
	if nr.HasSpoilers, err = GetYesNo(a.reader, "Contains spoilers?", a.out); err != nil {
		return err
	}
	if nr.IsPublic, err = GetYesNo(a.reader, "Make it public?", a.out); err != nil {
		return err
	}

	r, err := a.reviews.PostReview(ctx, book, nr)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review #%d posted.\n", r.ID)
	return nil
}

func (a *App) likeArgs(args []string, cmd string) (int, int, error) {
	book, err := intArg(args, 0, "book id")
	if err != nil {
		return 0, 0, usage("%s <book> <review>: %v", cmd, err)
	}
	review, err := intArg(args, 1, "review id")
	if err != nil {
		return 0, 0, usage("%s <book> <review>: %v", cmd, err)
	}
	return book, review, nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	book, review, err := a.likeArgs(args, "like")
	if err != nil {
		return err
	}
	if err := a.reviews.Like(ctx, book, review); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Liked.")
	return nil
}

func (a *App) Unlike(ctx context.Context, args []string) error {
	book, review, err := a.likeArgs(args, "unlike")
	if err != nil {
		return err
	}
	if err := a.reviews.Unlike(ctx, book, review); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Like removed.")
	return nil
}

func (a *App) Comments(ctx context.Context, args []string) error {
	review, err := intArg(args, 0, "review id")
	if err != nil {
		return usage("comments <review>: %v", err)
	}
	comments, err := a.reviews.Comments(ctx, review)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Fprintln(a.out, "No comments.")
		return nil
	}
	for _, c := range comments {
		fmt.Fprintf(a.out, "#%d  %s  %s\n", c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Text)
	}
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	review, err := intArg(args, 0, "review id")
	if err != nil {
		return usage("comment <review>: %v", err)
	}
	text, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	c, err := a.reviews.PostComment(ctx, review, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment #%d posted.\n", c.ID)
	return nil
}
