package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vilarbucks/vilarbucks/internal/client/services"
)

func (a *App) Tasks(ctx context.Context) error {
	tasks, err := a.tasks.List(ctx)
	if err != nil {
		a.reportTaskError(err)
		return err
	}

	if len(tasks) == 0 {
		printlnFn("No tasks available.")
		return nil
	}
	for _, t := range tasks {
		printlnFn(fmt.Sprintf("%5d  %-10s %8s  %s", t.ID, t.Type, t.RewardAmount.StringFixed(2), t.Title))
	}
	return nil
}

// Complete submits the task whose id is args[0].
func (a *App) Complete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: complete <id>")
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid task id:", args[0])
		return nil
	}

	res, err := a.tasks.Complete(ctx, id)
	if err != nil {
		a.reportTaskError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Task %d completed, earned %s.", id, res.Reward.Amount.StringFixed(2)))
	return nil
}

func (a *App) reportTaskError(err error) {
	if errors.Is(err, services.ErrNotAuthenticated) {
		printlnFn("Not logged in.")
		return
	}
	printlnFn("Error:", err)
}
