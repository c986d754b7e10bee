package handlers

import "errors"

var (
	ErrMissingSession = errors.New("missing session id")
)
