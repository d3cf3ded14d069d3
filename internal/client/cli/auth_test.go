package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vilarbucks/vilarbucks/internal/client/client"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/client/services"
)

func TestLogin_Success(t *testing.T) {
	out := captureOutput(t)
	pw := []byte("secret")
	stubInputs(t, []string{"ann@example.org"}, pw)

	s := &fakeSession{loginOK: true}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "ann@example.org", s.loginEmail)
	require.Equal(t, "secret", s.loginPass)
	require.Equal(t, make([]byte, 6), pw, "password buffer wiped")
	require.Contains(t, out.String(), "Logged in as Ann.")
	require.True(t, a.isLoggedIn())
}

func TestLogin_FailureReported(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"ann@example.org"}, []byte("wrong"))

	s := &fakeSession{}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.Login(context.Background()))
	require.Contains(t, out.String(), "Login failed")
	require.False(t, a.isLoggedIn())
}

func TestLogin_InputError(t *testing.T) {
	captureOutput(t)
	stubInputs(t, nil, nil)

	s := &fakeSession{}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.Error(t, a.Login(context.Background()))
	require.Empty(t, s.loginEmail)
}

func TestRegister_Success(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"neo@example.org", "Neo"}, []byte("pw"))

	s := &fakeSession{registerOK: true}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.Register(context.Background()))
	require.Equal(t, "neo@example.org", s.regEmail)
	require.Equal(t, "pw", s.regPass)
	require.Equal(t, "Neo", s.regName)
	require.Contains(t, out.String(), "Welcome, Neo!")
}

func TestRegister_Failure(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"neo@example.org", "Neo"}, []byte("pw"))

	a := newTestApp(t, &fakeSession{}, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.Register(context.Background()))
	require.Contains(t, out.String(), "Registration failed.")
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	s := &fakeSession{user: &models.User{ID: "1", Name: "Ann"}}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.Logout(context.Background()))
	require.Equal(t, 1, s.logouts)
	require.False(t, a.isLoggedIn())
	require.Contains(t, out.String(), "Logged out.")
}

func TestWhoAmI(t *testing.T) {
	out := captureOutput(t)
	s := &fakeSession{user: &models.User{
		ID:             "42",
		Email:          "a@b.com",
		Name:           "Ann",
		Balance:        decimal.RequireFromString("12.5"),
		TotalEarned:    decimal.RequireFromString("20"),
		TasksCompleted: 3,
		JoinedAt:       time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		ReferralCode:   "VLAR42",
	}}
	a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.WhoAmI(context.Background()))
	got := out.String()
	require.Contains(t, got, "Ann <a@b.com>")
	require.Contains(t, got, "12.50")
	require.Contains(t, got, "20.00")
	require.Contains(t, got, "tasks completed: 3")
	require.Contains(t, got, "VLAR42 (0 referrals)")
	require.Contains(t, got, "2026-01-02")
}

func TestWhoAmI_LoggedOut(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(t, &fakeSession{}, &fakeTasks{}, &fakeAPI{})

	require.NoError(t, a.WhoAmI(context.Background()))
	require.Contains(t, out.String(), "Not logged in.")
}

func TestRefreshCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", want: "Balance: 1.00"},
		{name: "logged out", err: services.ErrNotAuthenticated, want: "Not logged in."},
		{name: "expired", err: &client.AuthError{Op: "get profile", Err: client.ErrUnauthorized}, want: "session has expired"},
		{name: "offline", err: errors.New("refresh profile: unreachable"), want: "Refresh failed: refresh profile: unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			s := &fakeSession{refreshErr: tt.err, user: &models.User{Name: "Ann", Balance: decimal.NewFromInt(1)}}
			a := newTestApp(t, s, &fakeTasks{}, &fakeAPI{})

			err := a.Refresh(context.Background())
			require.ErrorIs(t, err, tt.err)
			require.Contains(t, out.String(), tt.want)
		})
	}
}

func TestCommands_SessionDroppedConcurrently(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		out := captureOutput(t)
		stubInputs(t, []string{"ann@example.org"}, []byte("pw"))
		a := newTestApp(t, &fakeSession{loginOK: true, dropAfterAuth: true}, &fakeTasks{}, &fakeAPI{})

		require.NotPanics(t, func() { require.NoError(t, a.Login(context.Background())) })
		require.Contains(t, out.String(), "Not logged in.")
	})

	t.Run("register", func(t *testing.T) {
		out := captureOutput(t)
		stubInputs(t, []string{"neo@example.org", "Neo"}, []byte("pw"))
		a := newTestApp(t, &fakeSession{registerOK: true, dropAfterAuth: true}, &fakeTasks{}, &fakeAPI{})

		require.NotPanics(t, func() { require.NoError(t, a.Register(context.Background())) })
		require.Contains(t, out.String(), "Not logged in.")
	})

	t.Run("refresh", func(t *testing.T) {
		out := captureOutput(t)
		a := newTestApp(t, &fakeSession{}, &fakeTasks{}, &fakeAPI{})

		require.NotPanics(t, func() { require.NoError(t, a.Refresh(context.Background())) })
		require.Contains(t, out.String(), "Not logged in.")
	})
}
