package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/vilarbucks/vilarbucks/internal/client/client"
	"github.com/vilarbucks/vilarbucks/internal/client/services"
	"github.com/vilarbucks/vilarbucks/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, display name and password and creates a
// customer account. A rejected registration is reported to the user and
// returns nil; only input errors are returned.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if !a.session.Register(ctx, email, string(password), name) {
		printlnFn("Registration failed.")
		return nil
	}

	a.greet("Welcome, %s!")
	return nil
}

// Login prompts for credentials. A failed login leaves any current session
// in place.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if !a.session.Login(ctx, email, string(password)) {
		printlnFn("Login failed: check your email and password.")
		return nil
	}

	a.greet("Logged in as %s.")
	return nil
}

// greet prints format with the current user's name. The session can be
// dropped by the background refresh between the command and this call.
func (a *App) greet(format string) {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in.")
		return
	}
	printlnFn(fmt.Sprintf(format, u.Name))
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	printlnFn(fmt.Sprintf("  balance:         %s", u.Balance.StringFixed(2)))
	printlnFn(fmt.Sprintf("  total earned:    %s", u.TotalEarned.StringFixed(2)))
	printlnFn(fmt.Sprintf("  tasks completed: %d", u.TasksCompleted))
	printlnFn(fmt.Sprintf("  referral code:   %s (%d referrals)", u.ReferralCode, u.ReferralCount))
	printlnFn(fmt.Sprintf("  member since:    %s", u.JoinedAt.Format("2006-01-02")))
	return nil
}

// Refresh reconciles the local profile with the server.
func (a *App) Refresh(ctx context.Context) error {
	err := a.session.Refresh(ctx)
	switch {
	case err == nil:
		if u := a.session.CurrentUser(); u != nil {
			printlnFn(fmt.Sprintf("Balance: %s", u.Balance.StringFixed(2)))
		} else {
			printlnFn("Not logged in.")
		}
	case errors.Is(err, services.ErrNotAuthenticated):
		printlnFn("Not logged in.")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Your session has expired, please log in again.")
	default:
		printlnFn("Refresh failed:", err)
	}
	return err
}
