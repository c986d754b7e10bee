package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-signup/internal/render"
)

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "code", code, "path", ctx.Path(), "error", err)
	} else {
		slog.Debug("Request rejected", "code", code, "path", ctx.Path(), "error", err)
	}

	switch code {
	case fiber.StatusBadRequest:
		return render.RenderError(ctx, code, "Bad request.")
	case fiber.StatusForbidden:
		return render.RenderError(ctx, code, "Forbidden.")
	case fiber.StatusNotFound:
		return render.RenderError(ctx, code, "Page not found.")
	default:
		return render.RenderError(ctx, fiber.StatusInternalServerError, "Something went wrong, please try again later.")
	}
}
