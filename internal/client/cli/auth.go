package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/client/services"
	"github.com/dmitrijs2005/bookup/internal/shared"
)

// getPassword is a test seam over GetPassword.
var getPassword = GetPassword

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(pw)

	if err := a.auth.Login(ctx, email, string(pw)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in. Continue at %s (try 'books').\n", a.config.LoginLanding)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	var req services.RegisterRequest
	var err error

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Username", &req.Username},
		{"Email", &req.Email},
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
	}
	for _, f := range fields {
		if *f.dst, err = GetSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	pw, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(pw)
	rpw, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(rpw)
	req.Password, req.RePassword = string(pw), string(rpw)

	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. Check your e-mail for the code and run 'verify'.")
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	otp, err := GetSimpleText(a.reader, "Code from the e-mail", a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.VerifyEmail(ctx, email, otp)
	if err != nil {
		return err
	}
	switch res {
	case services.Verified:
		fmt.Fprintln(a.out, "E-mail verified. You can log in now.")
	case services.AlreadyVerified:
		fmt.Fprintln(a.out, "E-mail was already verified.")
	case services.InvalidCode:
		fmt.Fprintln(a.out, "Invalid code. Run 'resend' to get a new one.")
	}
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ResendEmail(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "A new code is on its way.")
	return nil
}

func (a *App) OAuth(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("oauth google|github")
	}
	provider, err := oauth.ParseProviderName(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Waiting for %s sign-in to finish in the browser...\n", provider)
	res, err := a.auth.OAuthLogin(ctx, provider)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in with %s. Continue at %s.\n", res.Provider, res.Landing)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	c, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User:    %s\n", c.UserID)
	if c.TokenType != "" {
		fmt.Fprintf(a.out, "Token:   %s\n", c.TokenType)
	}
	if !c.ExpiresAt.IsZero() {
		state := "valid"
		if c.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Expires: %s (%s)\n", c.ExpiresAt.Local().Format(time.DateTime), state)
	}
	return nil
}
