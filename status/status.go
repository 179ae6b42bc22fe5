// Package status models the small state machine behind user-facing
// async actions: login, reset, verify, create-user. Pages render one
// projection at a time; resubmitting a form after a failure re-enters
// Loading.
package status

import (
	"fmt"
	"time"
)

type State string

const (
	// Idle - no action taken yet.
	Idle State = "idle"
	// Loading - action in flight; the triggering control is disabled
	// so no second request can start.
	Loading State = "loading"
	// PasswordRequired - intermediate step for verification tokens
	// that need a password collected before the verify call.
	PasswordRequired State = "password_required"
	// Success - terminal for read views; auth flows follow with a
	// timed redirect.
	Success State = "success"
	// Error - terminal, retry permitted by resubmitting the form.
	Error State = "error"
)

// Redirect timing after a successful action.
const (
	// LoginRedirectDelay is how long the success message is shown
	// before navigating to the dashboard.
	LoginRedirectDelay = 500 * time.Millisecond
	// VerifyCountdownSeconds is the visible countdown after email
	// verification before navigating to the redirect URL.
	VerifyCountdownSeconds = 5
)

var transitions = map[State][]State{
	Idle:             {Loading},
	Loading:          {Success, Error, PasswordRequired},
	PasswordRequired: {Loading, Error},
	Error:            {Loading},
	Success:          {},
}

// Next validates a transition and returns the new state.
func (s State) Next(to State) (State, error) {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("invalid status transition %s -> %s", s, to)
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Retryable reports whether resubmitting the form is permitted.
func (s State) Retryable() bool {
	return s == Error
}

// Projection is what a page template renders for the current state.
type Projection struct {
	State   State
	Message string
}

// Advance moves the projection through a validated transition, keeping
// the previous state on an invalid one.
func (p *Projection) Advance(to State, message string) error {
	next, err := p.State.Next(to)
	if err != nil {
		return err
	}
	p.State = next
	p.Message = message
	return nil
}
