package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khanghh/cas-signup/internal/signup"
	"github.com/khanghh/cas-signup/internal/store"
)

type sessionLock struct {
	sync.Mutex
	refs int
}

// formSessions owns the load-modify-save cycle of every session's form. Forms with
// a submission in flight stay in memory so edits made meanwhile and the
// registration result land on the same Form.
type formSessions struct {
	store store.Store[signup.Snapshot]
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sessionLock
	live  map[string]*signup.Form
}

func (s *formSessions) lock(sid string) func() {
	s.mu.Lock()
	l, ok := s.locks[sid]
	if !ok {
		l = &sessionLock{}
		s.locks[sid] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sid)
		}
		s.mu.Unlock()
	}
}

func (s *formSessions) liveForm(sid string) *signup.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live[sid]
}

func (s *formSessions) setLive(sid string, form *signup.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if form == nil {
		delete(s.live, sid)
		return
	}
	s.live[sid] = form
}

// load must be called with the session lock held.
func (s *formSessions) load(ctx context.Context, sid string) (*signup.Form, error) {
	if form := s.liveForm(sid); form != nil {
		return form, nil
	}
	snap, err := s.store.Get(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return signup.NewForm(), nil
	} else if err != nil {
		return nil, err
	}
	return signup.RestoreForm(*snap), nil
}

// save must be called with the session lock held. Passwords never reach the store.
func (s *formSessions) save(ctx context.Context, sid string, snap signup.Snapshot) error {
	return s.store.Set(ctx, sid, snap.WithoutPasswords(), s.ttl)
}

// View returns the current snapshot of the session's form.
func (s *formSessions) View(ctx context.Context, sid string) (signup.Snapshot, error) {
	unlock := s.lock(sid)
	defer unlock()
	form, err := s.load(ctx, sid)
	if err != nil {
		return signup.Snapshot{}, err
	}
	return form.Snapshot(), nil
}

// Update runs fn on the session's form and persists the result.
func (s *formSessions) Update(ctx context.Context, sid string, fn func(*signup.Form) error) (signup.Snapshot, error) {
	unlock := s.lock(sid)
	defer unlock()
	form, err := s.load(ctx, sid)
	if err != nil {
		return signup.Snapshot{}, err
	}
	if err := fn(form); err != nil {
		return signup.Snapshot{}, err
	}
	snap := form.Snapshot()
	return snap, s.save(ctx, sid, snap)
}

// Checkout applies fn like Update and keeps the form in memory until Release, so
// the caller may work on it without holding the session lock.
func (s *formSessions) Checkout(ctx context.Context, sid string, fn func(*signup.Form) error) (*signup.Form, error) {
	unlock := s.lock(sid)
	defer unlock()
	form, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := fn(form); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sid, form.Snapshot()); err != nil {
		return nil, err
	}
	s.setLive(sid, form)
	return form, nil
}

// Release persists the checked out form of sid and drops it from memory. The
// returned snapshot still carries the passwords for the response being built.
func (s *formSessions) Release(ctx context.Context, sid string) (signup.Snapshot, error) {
	unlock := s.lock(sid)
	defer unlock()
	form, err := s.load(ctx, sid)
	if err != nil {
		return signup.Snapshot{}, err
	}
	s.setLive(sid, nil)
	snap := form.Snapshot()
	return snap, s.save(ctx, sid, snap)
}

func newFormSessions(forms store.Store[signup.Snapshot], ttl time.Duration) *formSessions {
	return &formSessions{
		store: forms,
		ttl:   ttl,
		locks: make(map[string]*sessionLock),
		live:  make(map[string]*signup.Form),
	}
}
