package sessions

import (
	"encoding/gob"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	injectSessionKey = "session"
	sessionDataKey   = "data"
)

type SessionData struct {
	id        string    // session id
	IP        string    // client ip address
	CSRFToken string    // csrf token
	CSRFUntil time.Time // csrf token expire time
	FirstSeen time.Time // first request time
	LastSeen  time.Time // last request time
}

func (s SessionData) ID() string {
	return s.id
}

func init() {
	gob.Register(SessionData{})
}

func Get(ctx *fiber.Ctx) SessionData {
	sess := ctx.Locals(injectSessionKey).(*session.Session)
	data, _ := sess.Get(sessionDataKey).(SessionData)
	data.id = sess.ID()
	return data
}

func Set(ctx *fiber.Ctx, data SessionData) {
	sess := ctx.Locals(injectSessionKey).(*session.Session)
	sess.Set(sessionDataKey, data)
}

func Destroy(ctx *fiber.Ctx) error {
	sess := ctx.Locals(injectSessionKey).(*session.Session)
	return sess.Destroy()
}

// SessionMiddleware loads the session of the request and saves it once the
// handler chain is done. Every visitor gets a session so the form state can be
// keyed by its id.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		ctx.Locals(injectSessionKey, sess)
		data, ok := sess.Get(sessionDataKey).(SessionData)
		if !ok {
			data = SessionData{IP: ctx.IP(), FirstSeen: time.Now()}
			sess.Set(sessionDataKey, data)
		}

		if err := ctx.Next(); err != nil {
			return err
		}

		data, ok = sess.Get(sessionDataKey).(SessionData)
		if !ok {
			return nil
		}
		data.LastSeen = time.Now()
		sess.Set(sessionDataKey, data)
		return sess.Save()
	}
}
