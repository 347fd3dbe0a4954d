package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
)
