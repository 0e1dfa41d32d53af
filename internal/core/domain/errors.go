package domain

import "errors"

var (
	ErrFunkoNotFound   = errors.New("funko not found")
	ErrFunkoNotValid   = errors.New("funko not valid")
	ErrFunkoNotRemoved = errors.New("funko not removed")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUserNotFound       = errors.New("user not found")

	ErrUnknownRequest = errors.New("unknown request type")
)
