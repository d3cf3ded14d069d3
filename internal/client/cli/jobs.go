package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vilarbucks/vilarbucks/internal/client/client"
)

const pingTimeout = 3 * time.Second

// startBackgroundJobs schedules the online status check and, when a refresh
// interval is configured, periodic profile reconciliation. The caller owns
// the returned scheduler and must shut it down.
func (a *App) startBackgroundJobs(ctx context.Context) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	if a.config.OnlineCheckInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(a.config.OnlineCheckInterval),
			gocron.NewTask(a.checkOnline, ctx),
			gocron.WithName("online-status"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		); err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("schedule online check: %w", err)
		}
	}

	if a.config.RefreshInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(a.config.RefreshInterval),
			gocron.NewTask(a.refreshProfile, ctx),
			gocron.WithName("profile-refresh"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("schedule profile refresh: %w", err)
		}
	}

	sched.Start()
	return sched, nil
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) refreshProfile(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		return
	}

	err := a.session.Refresh(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Your session has expired, please log in again.")
	default:
		a.log.Warn(ctx, "profile refresh failed", "error", err)
	}
}
