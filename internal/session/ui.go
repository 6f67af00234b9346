package session

import (
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type CursorType string

const (
	CursorDefault CursorType = "default"
	CursorPointer CursorType = "pointer"
	CursorText    CursorType = "text"
	CursorDrag    CursorType = "drag"
	CursorHidden  CursorType = "hidden"
)

func (c CursorType) Valid() bool {
	switch c {
	case CursorDefault, CursorPointer, CursorText, CursorDrag, CursorHidden:
		return true
	}
	return false
}

const DefaultToastTTL = 3 * time.Second

// UIState is a snapshot of the transient UI flags. Nothing in it is persisted.
type UIState struct {
	HasEntered    bool          `json:"has_entered"`
	MenuOpen      bool          `json:"menu_open"`
	Loading       bool          `json:"loading"`
	ColorRevealed bool          `json:"color_revealed"`
	Cursor        CursorType    `json:"cursor"`
	Toast         *domain.Toast `json:"toast"`
}

// UI is the per-visitor session store: entry gate, single toast, menu and cosmetic flags.
type UI struct {
	mu            sync.Mutex
	hasEntered    bool
	menuOpen      bool
	loading       bool
	colorRevealed bool
	cursor        CursorType

	toast      *domain.Toast
	toastSeq   uint64
	toastTimer *time.Timer
	toastTTL   time.Duration

	now       func() time.Time
	afterFunc func(time.Duration, func()) *time.Timer

	subs subscribers[UIState]
}

type UIOption func(*UI)

func WithToastTTL(d time.Duration) UIOption {
	return func(u *UI) { u.toastTTL = d }
}

func NewUI(opts ...UIOption) *UI {
	u := &UI{
		cursor:    CursorDefault,
		toastTTL:  DefaultToastTTL,
		now:       time.Now,
		afterFunc: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Enter flips the entry gate. There is no way back for the rest of the session.
func (u *UI) Enter() {
	u.update(func() { u.hasEntered = true })
}

func (u *UI) HasEntered() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hasEntered
}

// ShowToast replaces any visible toast and schedules its auto-dismiss.
// An empty severity means info.
func (u *UI) ShowToast(message string, severity domain.Severity) domain.Toast {
	if severity == "" {
		severity = domain.SeverityInfo
	}

	u.mu.Lock()
	u.stopToastTimer()
	u.toastSeq++
	id := u.toastSeq
	toast := domain.Toast{
		ID:        id,
		Message:   message,
		Severity:  severity,
		ExpiresAt: u.now().Add(u.toastTTL),
	}
	u.toast = &toast
	u.toastTimer = u.afterFunc(u.toastTTL, func() { u.expireToast(id) })
	state := u.state()
	u.mu.Unlock()

	u.subs.notify(state)
	return toast
}

// HideToast clears the toast and cancels its pending auto-dismiss.
func (u *UI) HideToast() {
	u.update(func() {
		u.stopToastTimer()
		u.toast = nil
	})
}

// expireToast is the auto-dismiss callback. It only clears the toast it was scheduled for,
// so a timer from a replaced toast cannot hide its successor.
func (u *UI) expireToast(id uint64) {
	u.mu.Lock()
	if u.toast == nil || u.toast.ID != id {
		u.mu.Unlock()
		return
	}
	u.toast = nil
	u.toastTimer = nil
	state := u.state()
	u.mu.Unlock()

	u.subs.notify(state)
}

func (u *UI) stopToastTimer() {
	if u.toastTimer != nil {
		u.toastTimer.Stop()
		u.toastTimer = nil
	}
}

func (u *UI) Toast() (domain.Toast, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.toast == nil {
		return domain.Toast{}, false
	}
	return *u.toast, true
}

func (u *UI) ToggleMenu() { u.update(func() { u.menuOpen = !u.menuOpen }) }
func (u *UI) OpenMenu()   { u.update(func() { u.menuOpen = true }) }
func (u *UI) CloseMenu()  { u.update(func() { u.menuOpen = false }) }

func (u *UI) SetLoading(loading bool) {
	u.update(func() { u.loading = loading })
}

func (u *UI) SetCursor(cursor CursorType) {
	u.update(func() { u.cursor = cursor })
}

func (u *UI) SetColorRevealed(revealed bool) {
	u.update(func() { u.colorRevealed = revealed })
}

func (u *UI) State() UIState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state()
}

func (u *UI) Subscribe(fn func(UIState)) func() {
	return u.subs.add(fn)
}

// Close cancels the pending toast timer.
func (u *UI) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stopToastTimer()
}

func (u *UI) update(fn func()) {
	u.mu.Lock()
	fn()
	state := u.state()
	u.mu.Unlock()

	u.subs.notify(state)
}

func (u *UI) state() UIState {
	s := UIState{
		HasEntered:    u.hasEntered,
		MenuOpen:      u.menuOpen,
		Loading:       u.loading,
		ColorRevealed: u.colorRevealed,
		Cursor:        u.cursor,
	}
	if u.toast != nil {
		t := *u.toast
		s.Toast = &t
	}
	return s
}
