package signup

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/khanghh/cas-signup/internal/signup"

// RegisterResult is the auth API answer to a successful call.
type RegisterResult struct {
	Success bool `json:"success"`
}

// Registrar creates the account on the external auth service.
type Registrar interface {
	Register(ctx context.Context, form FormState) (*RegisterResult, error)
}

// RegistrarFunc adapts a plain function to Registrar.
type RegistrarFunc func(ctx context.Context, form FormState) (*RegisterResult, error)

func (fn RegistrarFunc) Register(ctx context.Context, form FormState) (*RegisterResult, error) {
	return fn(ctx, form)
}

// OutcomeKind tells how a Submit call ended.
type OutcomeKind int

const (
	OutcomeInvalid OutcomeKind = iota
	OutcomePending
	OutcomeSuccess
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeInvalid:
		return "invalid"
	case OutcomePending:
		return "pending"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	}
	return "unknown"
}

// Outcome is the result of one Submit call. Reason is only meaningful for
// OutcomeFailure, Errors holds the validation errors computed for the submit.
type Outcome struct {
	Kind         OutcomeKind
	Reason       Reason
	Errors       ErrorMap
	SubmissionID string
	Err          error
}

func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

type Coordinator struct {
	registrar Registrar
	validator *Validator
	msgs      Messages
	logger    *slog.Logger
}

// Submit validates the form and, when valid, registers it. It blocks until the
// registrar answers; the form may be edited concurrently and the answer is
// applied to it regardless.
func (c *Coordinator) Submit(ctx context.Context, form *Form) Outcome {
	state, formErrors, valid, err := form.beginSubmit(c.validator.Validate)
	if err != nil {
		return Outcome{Kind: OutcomePending, Err: err}
	}
	if !valid {
		return Outcome{Kind: OutcomeInvalid, Errors: formErrors}
	}

	submissionID := uuid.NewString()
	ctx = WithSubmissionID(ctx, submissionID)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "signup.Submit")
	span.SetAttributes(attribute.String("signup.submission_id", submissionID))
	defer span.End()

	outcome := Outcome{Errors: formErrors, SubmissionID: submissionID}
	result, err := c.registrar.Register(ctx, state)
	if err == nil && result != nil && result.Success {
		form.endSubmit(true, "", "")
		outcome.Kind = OutcomeSuccess
		c.logger.Debug("Registration succeeded", "submissionID", submissionID)
		return outcome
	}
	if err == nil {
		err = ErrRegistrationRejected
	}

	outcome.Kind = OutcomeFailure
	outcome.Err = err
	outcome.Reason = c.msgs.Classify(err)
	span.SetAttributes(attribute.String("signup.failure_reason", outcome.Reason.String()))
	switch outcome.Reason {
	case ReasonEmailTaken:
		form.endSubmit(false, FieldEmail, c.msgs.EmailTaken)
	case ReasonNameTaken:
		form.endSubmit(false, FieldName, c.msgs.NameTaken)
	default:
		form.endSubmit(false, "", "")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("Failed to register user",
			"submissionID", submissionID,
			"email", maskEmail(state.Email),
			"error", err,
		)
	}
	return outcome
}

func NewCoordinator(registrar Registrar, msgs Messages, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	msgs = msgs.Merge(DefaultMessages)
	return &Coordinator{
		registrar: registrar,
		validator: NewValidator(msgs),
		msgs:      msgs,
		logger:    logger,
	}
}
