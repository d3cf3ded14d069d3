package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/vilarbucks/vilarbucks/internal/client/config"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

type fakeSession struct {
	mu sync.Mutex

	user *models.User

	loginOK    bool
	registerOK bool
	refreshErr error

	// dropAfterAuth makes Login and Register succeed without leaving a
	// user behind, as when a concurrent refresh logs the session out.
	dropAfterAuth bool

	loginEmail, loginPass        string
	regEmail, regPass, regName   string
	hydrated, logouts, refreshes int
}

func (f *fakeSession) Hydrate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hydrated++
}

func (f *fakeSession) Login(_ context.Context, email, password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginEmail, f.loginPass = email, password
	if f.loginOK && !f.dropAfterAuth {
		f.user = &models.User{ID: "1", Email: email, Name: "Ann"}
	}
	return f.loginOK
}

func (f *fakeSession) Register(_ context.Context, email, password, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regEmail, f.regPass, f.regName = email, password, name
	if f.registerOK && !f.dropAfterAuth {
		f.user = &models.User{ID: "2", Email: email, Name: name}
	}
	return f.registerOK
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
}

func (f *fakeSession) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return f.refreshErr
}

func (f *fakeSession) CurrentUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user.Clone()
}

func (f *fakeSession) IsAuthenticated() bool { return f.CurrentUser() != nil }

func (f *fakeSession) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

type fakeTasks struct {
	listOut []models.Task
	listErr error

	completeID  int64
	completeOut *models.TaskCompletion
	completeErr error
}

func (f *fakeTasks) List(context.Context) ([]models.Task, error) { return f.listOut, f.listErr }

func (f *fakeTasks) Complete(_ context.Context, id int64) (*models.TaskCompletion, error) {
	f.completeID = id
	return f.completeOut, f.completeErr
}

type fakeAPI struct {
	mu      sync.Mutex
	pingErr error
	pings   int
	closed  bool
}

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAPI) Close() error {
	f.closed = true
	return nil
}

func (f *fakeAPI) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

// captureOutput redirects printlnFn into a buffer for the duration of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(fmt.Sprint(v))
		}
		return buf.WriteString(strings.Join(parts, " ") + "\n")
	}
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

func stubInputs(t *testing.T, lines []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	next := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if next >= len(lines) {
			return "", io.EOF
		}
		next++
		return lines[next-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func bufferLogger(t *testing.T) (logging.Logger, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func newTestApp(t *testing.T, s *fakeSession, ts *fakeTasks, api *fakeAPI) *App {
	t.Helper()
	cfg := &config.Config{}
	return &App{
		config:  cfg,
		session: s,
		tasks:   ts,
		api:     api,
		log:     logging.Discard(),
		out:     io.Discard,
	}
}
