package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-signup/internal/middlewares/csrf"
	"github.com/khanghh/cas-signup/internal/middlewares/sessions"
	"github.com/khanghh/cas-signup/internal/render"
	"github.com/khanghh/cas-signup/internal/signup"
	"github.com/khanghh/cas-signup/internal/store"
	"golang.org/x/sync/singleflight"
)

type RegisterHandler struct {
	coordinator SignupCoordinator
	forms       *formSessions
	inflight    singleflight.Group
}

func NewRegisterHandler(coordinator SignupCoordinator, forms store.Store[signup.Snapshot], formTTL time.Duration) *RegisterHandler {
	return &RegisterHandler{
		coordinator: coordinator,
		forms:       newFormSessions(forms, formTTL),
	}
}

func sessionID(ctx *fiber.Ctx) (string, error) {
	sid := sessions.Get(ctx).ID()
	if sid == "" {
		return "", ErrMissingSession
	}
	return sid, nil
}

func (h *RegisterHandler) GetRegister(ctx *fiber.Ctx) error {
	sid, err := sessionID(ctx)
	if err != nil {
		return err
	}
	snap, err := h.forms.View(ctx.UserContext(), sid)
	if err != nil {
		return err
	}
	return render.RenderRegister(ctx, render.NewRegisterPageData(csrf.Token(ctx), snap))
}

// PostRegister applies the posted values and submits the form. Concurrent posts of
// the same session share one submission. The form stays editable through
// PostField while the auth API answers.
func (h *RegisterHandler) PostRegister(ctx *fiber.Ctx) error {
	sid, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var input RegisterForm
	if err := ctx.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userCtx := ctx.UserContext()
	val, err, _ := h.inflight.Do(sid, func() (any, error) {
		form, err := h.forms.Checkout(userCtx, sid, input.Apply)
		if err != nil {
			return nil, err
		}
		h.coordinator.Submit(userCtx, form)
		return h.forms.Release(userCtx, sid)
	})
	if err != nil {
		return err
	}
	return render.RenderRegister(ctx, render.NewRegisterPageData(csrf.Token(ctx), val.(signup.Snapshot)))
}

// PostField edits one field, clearing its error, and replies with the errors left.
func (h *RegisterHandler) PostField(ctx *fiber.Ctx) error {
	sid, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var input FieldEditForm
	if err := ctx.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	field, err := signup.ParseField(input.Field)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	snap, err := h.forms.Update(ctx.UserContext(), sid, func(form *signup.Form) error {
		if field == signup.FieldAcceptedTerms {
			form.SetAcceptedTerms(parseBool(input.Value))
			return nil
		}
		if err := form.SetField(field, input.Value); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil
	})
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"errors":        snap.Errors,
		"acceptedTerms": snap.AcceptedTerms,
		"success":       snap.Success,
	})
}

// PostAcknowledge dismisses the success notification and resets the form.
func (h *RegisterHandler) PostAcknowledge(ctx *fiber.Ctx) error {
	sid, err := sessionID(ctx)
	if err != nil {
		return err
	}
	_, err = h.forms.Update(ctx.UserContext(), sid, func(form *signup.Form) error {
		form.Acknowledge()
		return nil
	})
	if err != nil {
		return err
	}
	return redirect(ctx, "/register")
}
