package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ReferralPrefix is prepended to the user id to form a referral code.
const ReferralPrefix = "VLAR"

// DefaultDisplayName is used when the profile carries no usable name.
const DefaultDisplayName = "User"

// User is the client-side projection of the logged-in account. It is
// rebuilt from a Profile on login, registration and hydration, and then
// adjusted locally.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	Balance decimal.Decimal `json:"balance"`
	// TotalEarned only grows, and only on positive balance adjustments.
	TotalEarned decimal.Decimal `json:"totalEarned"`
	// TasksCompleted counts positive balance adjustments since the
	// projection was built.
	TasksCompleted int `json:"tasksCompleted"`

	// JoinedAt is when this projection was created locally, not the
	// server-side signup date.
	JoinedAt time.Time `json:"joinedAt"`

	ReferralCode  string `json:"referralCode"`
	ReferralCount int    `json:"referralCount"`
}

// ReferralCode derives the referral code of the account with the given id.
func ReferralCode(id int64) string {
	return ReferralPrefix + strconv.FormatInt(id, 10)
}

// Equal reports whether u and o describe the same projection. Decimals are
// compared by value and times by instant.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.ID == o.ID &&
		u.Email == o.Email &&
		u.Name == o.Name &&
		u.Balance.Equal(o.Balance) &&
		u.TotalEarned.Equal(o.TotalEarned) &&
		u.TasksCompleted == o.TasksCompleted &&
		u.JoinedAt.Equal(o.JoinedAt) &&
		u.ReferralCode == o.ReferralCode &&
		u.ReferralCount == o.ReferralCount
}

// Clone returns a copy of u; nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
