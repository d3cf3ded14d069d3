package models

import "github.com/shopspring/decimal"

type TaskType string

const (
	TaskDaily   TaskType = "daily"
	TaskWeekly  TaskType = "weekly"
	TaskMonthly TaskType = "monthly"
	TaskOneTime TaskType = "one-time"
)

type Currency struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Task is an entry of the available-tasks list.
type Task struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Type             TaskType        `json:"taskType"`
	RewardAmount     decimal.Decimal `json:"rewardAmount"`
	RewardCurrencyID int64           `json:"rewardCurrencyId"`
	MaxCompletions   *int            `json:"maxCompletions,omitempty"`
	ValidUntil       string          `json:"validUntil,omitempty"`
	IsActive         bool            `json:"isActive"`
	RewardCurrency   *Currency       `json:"rewardCurrency,omitempty"`
}

// Reward is the payout granted for a completed task.
type Reward struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency int64           `json:"currency"`
}

// TaskCompletion is the server's answer to a task completion.
type TaskCompletion struct {
	Message string `json:"message"`
	Reward  Reward `json:"reward"`
}
