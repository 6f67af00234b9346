package session

import (
	"sync"
	"time"
)

type Phase string

const (
	PhaseLanding    Phase = "landing"
	PhaseTransition Phase = "transition"
	PhaseProduct    Phase = "product"
)

const DefaultEntryDelay = 2500 * time.Millisecond

// HomeRoute is the only route on which chrome can be hidden.
const HomeRoute = "/"

// Landing drives the home page from the splash to the product view.
// Phases only move forward: landing, transition, product.
type Landing struct {
	mu        sync.Mutex
	phase     Phase
	ui        *UI
	delay     time.Duration
	timer     *time.Timer
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewLanding starts in the product phase when the visitor has already entered this session.
func NewLanding(ui *UI, delay time.Duration) *Landing {
	phase := PhaseLanding
	if ui.HasEntered() {
		phase = PhaseProduct
	}
	return &Landing{
		phase:     phase,
		ui:        ui,
		delay:     delay,
		afterFunc: time.AfterFunc,
	}
}

// Begin handles the first interaction with the splash. Later calls do nothing.
// It reports whether the transition was started.
func (l *Landing) Begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.phase != PhaseLanding {
		return false
	}
	l.phase = PhaseTransition
	l.timer = l.afterFunc(l.delay, l.complete)
	return true
}

func (l *Landing) complete() {
	l.mu.Lock()
	if l.phase != PhaseTransition {
		l.mu.Unlock()
		return
	}
	l.phase = PhaseProduct
	l.timer = nil
	l.mu.Unlock()

	l.ui.Enter()
}

func (l *Landing) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ui.HasEntered() {
		return PhaseProduct
	}
	return l.phase
}

func (l *Landing) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// ShouldShowChrome reports whether header and footer are visible on route.
func ShouldShowChrome(hasEntered bool, route string) bool {
	return hasEntered || route != HomeRoute
}
