package handlers

import (
	"context"

	"github.com/khanghh/cas-signup/internal/signup"
)

type SignupCoordinator interface {
	Submit(ctx context.Context, form *signup.Form) signup.Outcome
}
