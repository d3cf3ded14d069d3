package services

import "errors"

// ErrNotAuthenticated is returned by operations that need a logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")
