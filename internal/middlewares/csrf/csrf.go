package csrf

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-signup/internal/middlewares/sessions"
	"github.com/khanghh/cas-signup/params"
)

const (
	FormFieldName = "_csrf"
	HeaderName    = "X-CSRF-Token"
)

var (
	ErrInvalidToken = errors.New("invalid CSRF token")
)

// Token returns the CSRF token of the current session.
func Token(ctx *fiber.Ctx) string {
	return sessions.Get(ctx).CSRFToken
}

func Verify(ctx *fiber.Ctx) bool {
	token := ctx.Get(HeaderName)
	if token == "" && ctx.Method() == fiber.MethodPost {
		token = ctx.FormValue(FormFieldName)
	}

	data := sessions.Get(ctx)
	if data.CSRFToken == "" || time.Now().After(data.CSRFUntil) || data.CSRFToken != token {
		return false
	}
	return true
}

func randomToken() string {
	const tokenLength = 32
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate CSRF token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// New issues a CSRF token for sessions without a valid one and rejects unsafe
// requests whose token does not match.
func New() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := sessions.Get(ctx)
		if data.CSRFToken == "" || time.Now().After(data.CSRFUntil) {
			data.CSRFToken = randomToken()
			data.CSRFUntil = time.Now().Add(params.CSRFTokenExpiration)
			sessions.Set(ctx, data)
		}

		switch ctx.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return ctx.Next()
		}
		if !Verify(ctx) {
			return fiber.NewError(fiber.StatusForbidden, ErrInvalidToken.Error())
		}
		return ctx.Next()
	}
}
