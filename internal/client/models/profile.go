// Package models defines the data shapes exchanged with the Vilarbucks API
// and the locally cached user projection.
package models

import "github.com/shopspring/decimal"

// Role classifies an account on the platform.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
)

// Profile is the user record as the API returns it.
type Profile struct {
	// ID is the server-issued numeric identifier.
	ID int64 `json:"id"`

	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role,omitempty"`

	IsActive   bool `json:"isActive"`
	IsVerified bool `json:"isVerified"`

	// WalletBalance is zero when the server omits it.
	WalletBalance decimal.Decimal `json:"walletBalance"`

	SubscriptionID *int64 `json:"subscriptionId,omitempty"`
}

// AuthResult is the body of a successful login or registration.
type AuthResult struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    Profile `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role,omitempty"`
}
