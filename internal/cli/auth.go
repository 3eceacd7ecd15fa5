package cli

import (
	"context"
	"fmt"

	"github.com/msomdec/moviedb/internal/domain"
)

func (a *App) Register(ctx context.Context) error {
	username, err := a.ask("Username: ")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.askSecret("Confirm password: ")
	if err != nil {
		return err
	}
	a.printf("Recovery question: %s\n", domain.RecoveryQuestion)
	answer, err := a.ask("Answer: ")
	if err != nil {
		return err
	}

	if _, err := a.svc.Auth.Register(ctx, username, password, confirm, answer); err != nil {
		return err
	}
	a.printf("Account %s created. You can now log in.\n", username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := a.ask("Username: ")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.svc.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.session = sess
	a.printf("Welcome, %s.\n", sess.Username)
	return nil
}

// Forgot resets a password after the recovery answer is verified.
func (a *App) Forgot(ctx context.Context) error {
	username, err := a.ask("Username: ")
	if err != nil {
		return err
	}
	a.printf("%s\n", domain.RecoveryQuestion)
	answer, err := a.ask("Answer: ")
	if err != nil {
		return err
	}

	userID, err := a.svc.Auth.VerifyRecovery(ctx, username, answer)
	if err != nil {
		return err
	}

	password, err := a.askSecret("New password: ")
	if err != nil {
		return err
	}
	confirm, err := a.askSecret("Confirm password: ")
	if err != nil {
		return err
	}
	if err := a.svc.Auth.ResetPassword(ctx, userID, password, confirm); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	a.printf("Password updated. You can now log in.\n")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	a.lastResults = nil
	a.printf("Logged out.\n")
	return nil
}
