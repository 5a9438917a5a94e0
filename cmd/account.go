package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AccountSignup creates an account and signs in.
func (r *Runner) AccountSignup(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")
	name := cmd.String("name")

	if err := r.requireIdentity(); err != nil {
		return err
	}

	r.logger.Info("creating account", "email", email)

	account, err := r.identity.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	r.writePlain("Signed up as %s", account.Email)
	if account.DisplayName != "" {
		r.writePlain(" (%s)", account.DisplayName)
	}
	r.writePlain("\n")
	return nil
}

// AccountLogin signs in with email and password.
func (r *Runner) AccountLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if err := r.requireIdentity(); err != nil {
		return err
	}

	r.logger.Info("signing in", "email", email)

	account, err := r.identity.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	r.writePlain("Signed in as %s\n", account.Email)
	return nil
}

// AccountLogout clears the cached session.
func (r *Runner) AccountLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireIdentity(); err != nil {
		return err
	}

	if err := r.identity.SignOut(ctx); err != nil {
		return err
	}

	r.writePlain("Signed out\n")
	return nil
}

// AccountStatus shows the current session without contacting the provider.
func (r *Runner) AccountStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireIdentity(); err != nil {
		return err
	}

	account := r.identity.CurrentAccount()
	if account == nil {
		r.writePlain("Not signed in\n")
		return nil
	}

	r.writePlain("Signed in as %s\n", account.Email)
	if account.DisplayName != "" {
		r.writePlain("Display name: %s\n", account.DisplayName)
	}
	return nil
}

// AccountDelete deletes the account's favorites document, the identity
// record, and the cached session. Requires --yes to proceed.
func (r *Runner) AccountDelete(ctx context.Context, cmd *cli.Command) error {
	password := cmd.String("password")
	confirmed := cmd.Bool("yes")

	if err := r.requireFavorites(); err != nil {
		return err
	}

	account := r.identity.CurrentAccount()
	if account == nil {
		return fmt.Errorf("%w: sign in before deleting the account", shared.ErrNotAuthenticated)
	}

	if !confirmed {
		r.writePlain("This permanently deletes %s, its favorites, and the local session.\n", account.Email)
		r.writePlain("Re-run with --yes to confirm.\n")
		return nil
	}

	r.logger.Info("deleting account", "email", account.Email)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.RemoveFavorites:
				r.writePlain("🗑  %s\n", update.Message)
			case tasks.DeleteIdentity:
				r.writePlain("🔐 %s\n", update.Message)
			case tasks.Reauthenticate:
				r.writePlain("🔁 %s\n", update.Message)
			case tasks.SignOut:
				r.writePlain("👋 %s\n", update.Message)
			}
		}
	}()

	result, err := r.account.DeleteAccount(ctx, progressCh, password)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainHeader("Account Deleted")
	r.writePlain("%s\n", result.Message)
	return nil
}
