package services

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginRet *models.AuthResult
	LoginErr error

	RegisterRet *models.AuthResult
	RegisterErr error

	ProfileRet *models.Profile
	ProfileErr error

	LogoutErr error

	TasksRet []models.Task
	TasksErr error

	CompleteRet *models.TaskCompletion
	CompleteErr error

	PingErr error

	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      models.RegisterRequest
	LastProfileToken  string
	LastLogoutToken   string
	LastTaskToken     string
	LastCompleteID    int64

	Calls map[string]int
}

func (f *fakeClient) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *fakeClient) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	f.called("login")
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	f.called("register")
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) GetCurrentProfile(ctx context.Context, token string) (*models.Profile, error) {
	f.called("profile")
	f.LastProfileToken = token
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Logout(ctx context.Context, token string) error {
	f.called("logout")
	f.LastLogoutToken = token
	return f.LogoutErr
}

func (f *fakeClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	f.called("tasks")
	f.LastTaskToken = token
	return f.TasksRet, f.TasksErr
}

func (f *fakeClient) CompleteTask(ctx context.Context, token string, taskID int64) (*models.TaskCompletion, error) {
	f.called("complete")
	f.LastTaskToken, f.LastCompleteID = token, taskID
	return f.CompleteRet, f.CompleteErr
}

func (f *fakeClient) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *fakeClient) Close() error {
	return nil
}

// ---- fake store ----

type fakeStore struct {
	mu sync.Mutex

	token string
	user  []byte

	LoadErr  error
	SaveErr  error
	ClearErr error

	Saves  int
	Clears int
}

type storeSnapshot struct {
	token string
	user  string
}

func (f *fakeStore) Load(ctx context.Context) (string, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return "", nil, f.LoadErr
	}
	return f.token, append([]byte(nil), f.user...), nil
}

func (f *fakeStore) Save(ctx context.Context, token string, user []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.token, f.user = token, append([]byte(nil), user...)
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token, f.user = "", nil
	return nil
}

func (f *fakeStore) snapshot() storeSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return storeSnapshot{token: f.token, user: string(f.user)}
}

// ---- logger ----

func bufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}
