package params

import "time"

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	SessionKeyPrefix     = "session:"
	FormStateKeyPrefix   = "signup:form:"
	CSRFTokenExpiration  = 1 * time.Hour
	DefaultFormStateTTL  = 24 * time.Hour
	DefaultAuthTimeout   = 10 * time.Second
	MinPasswordLength    = 6
	RequestIDHeader      = "X-Request-ID"
	RegisterEndpointPath = "/register"
)
