package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vilarbucks/vilarbucks/internal/client/client"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

// balanceHolder is the part of Session the task service needs.
type balanceHolder interface {
	Token() string
	AdjustBalance(ctx context.Context, amount decimal.Decimal)
}

// TaskService lists reward tasks and completes them. A completion is
// settled by the server first; only then is the reward applied to the
// local balance.
type TaskService struct {
	client  client.Client
	session balanceHolder
	log     logging.Logger
}

func NewTaskService(c client.Client, session balanceHolder, log logging.Logger) *TaskService {
	return &TaskService{client: c, session: session, log: log.With("component", "tasks")}
}

func (t *TaskService) List(ctx context.Context) ([]models.Task, error) {
	token := t.session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	tasks, err := t.client.ListTasks(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (t *TaskService) Complete(ctx context.Context, taskID int64) (*models.TaskCompletion, error) {
	token := t.session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	res, err := t.client.CompleteTask(ctx, token, taskID)
	if err != nil {
		return nil, fmt.Errorf("complete task %d: %w", taskID, err)
	}

	t.session.AdjustBalance(ctx, res.Reward.Amount)
	t.log.Info(ctx, "task completed", "task_id", taskID, "reward", res.Reward.Amount)
	return res, nil
}
