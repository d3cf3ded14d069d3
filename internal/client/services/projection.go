package services

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
)

// buildUser derives a fresh projection from a server profile. Counters start
// from the wallet balance and zero; JoinedAt is the local creation time.
func buildUser(p *models.Profile, fallbackName string, now time.Time) *models.User {
	return &models.User{
		ID:             strconv.FormatInt(p.ID, 10),
		Email:          p.Email,
		Name:           displayName(p, fallbackName),
		Balance:        p.WalletBalance,
		TotalEarned:    p.WalletBalance,
		TasksCompleted: 0,
		JoinedAt:       now,
		ReferralCode:   models.ReferralCode(p.ID),
		ReferralCount:  0,
	}
}

func displayName(p *models.Profile, fallback string) string {
	switch {
	case p.Username != "":
		return p.Username
	case p.FirstName != "":
		return p.FirstName
	case fallback != "":
		return fallback
	default:
		return models.DefaultDisplayName
	}
}

// applyAdjustment returns u with amount added to the balance. Only strictly
// positive amounts count as earnings and as a completed task.
func applyAdjustment(u *models.User, amount decimal.Decimal) *models.User {
	next := u.Clone()
	next.Balance = u.Balance.Add(amount)
	if amount.IsPositive() {
		next.TotalEarned = u.TotalEarned.Add(amount)
		next.TasksCompleted = u.TasksCompleted + 1
	}
	return next
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Opaque
// tokens and tokens without exp report ok == false.
func tokenExpiry(token string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
