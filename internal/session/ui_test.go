package session

import (
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimers captures scheduled callbacks so tests decide when they fire.
type manualTimers struct {
	mu        sync.Mutex
	callbacks []func()
	delays    []time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, fn func()) *time.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
	m.delays = append(m.delays, d)
	return time.NewTimer(time.Hour)
}

func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	fn := m.callbacks[i]
	m.mu.Unlock()
	fn()
}

func (m *manualTimers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.callbacks)
}

func newManualUI(t *testing.T) (*UI, *manualTimers) {
	timers := &manualTimers{}
	u := NewUI()
	u.afterFunc = timers.afterFunc
	t.Cleanup(u.Close)
	return u, timers
}

func TestUI_Defaults(t *testing.T) {
	u := NewUI()
	state := u.State()

	assert.False(t, state.HasEntered)
	assert.False(t, state.MenuOpen)
	assert.False(t, state.Loading)
	assert.False(t, state.ColorRevealed)
	assert.Equal(t, CursorDefault, state.Cursor)
	assert.Nil(t, state.Toast)
}

func TestUI_EnterIsOneWay(t *testing.T) {
	u := NewUI()

	u.Enter()
	u.Enter()

	assert.True(t, u.HasEntered())
}

func TestUI_ShowToastDefaultsToInfo(t *testing.T) {
	u, timers := newManualUI(t)

	toast := u.ShowToast("Hello", "")

	assert.Equal(t, domain.SeverityInfo, toast.Severity)
	assert.Equal(t, "Hello", toast.Message)
	require.Equal(t, 1, timers.count())
	assert.Equal(t, DefaultToastTTL, timers.delays[0])
}

func TestUI_ToastAutoDismiss(t *testing.T) {
	u, timers := newManualUI(t)

	u.ShowToast("Added to bag", domain.SeveritySuccess)
	_, visible := u.Toast()
	require.True(t, visible)

	timers.fire(0)

	_, visible = u.Toast()
	assert.False(t, visible)
}

func TestUI_StaleTimerDoesNotHideNewerToast(t *testing.T) {
	u, timers := newManualUI(t)

	first := u.ShowToast("A", domain.SeverityInfo)
	second := u.ShowToast("B", domain.SeverityError)
	require.NotEqual(t, first.ID, second.ID)

	// A's timer fires after B replaced it
	timers.fire(0)

	toast, visible := u.Toast()
	require.True(t, visible)
	assert.Equal(t, "B", toast.Message)
	assert.Equal(t, domain.SeverityError, toast.Severity)

	timers.fire(1)
	_, visible = u.Toast()
	assert.False(t, visible)
}

func TestUI_HideToast(t *testing.T) {
	u, timers := newManualUI(t)

	u.ShowToast("A", domain.SeverityInfo)
	u.HideToast()
	_, visible := u.Toast()
	assert.False(t, visible)

	// a late timer for a hidden toast is a no-op
	u.ShowToast("B", domain.SeverityInfo)
	timers.fire(0)
	toast, visible := u.Toast()
	require.True(t, visible)
	assert.Equal(t, "B", toast.Message)
}

func TestUI_ToastRealTimer(t *testing.T) {
	u := NewUI(WithToastTTL(20 * time.Millisecond))
	defer u.Close()

	u.ShowToast("short lived", domain.SeverityInfo)

	require.Eventually(t, func() bool {
		_, visible := u.Toast()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestUI_Menu(t *testing.T) {
	u := NewUI()

	u.ToggleMenu()
	assert.True(t, u.State().MenuOpen)
	u.ToggleMenu()
	assert.False(t, u.State().MenuOpen)

	u.OpenMenu()
	u.OpenMenu()
	assert.True(t, u.State().MenuOpen)
	u.CloseMenu()
	assert.False(t, u.State().MenuOpen)
}

func TestUI_Flags(t *testing.T) {
	u := NewUI()

	u.SetLoading(true)
	u.SetColorRevealed(true)
	u.SetCursor(CursorDrag)

	state := u.State()
	assert.True(t, state.Loading)
	assert.True(t, state.ColorRevealed)
	assert.Equal(t, CursorDrag, state.Cursor)
}

func TestUI_Subscribe(t *testing.T) {
	u, _ := newManualUI(t)

	var got []UIState
	unsubscribe := u.Subscribe(func(s UIState) { got = append(got, s) })

	u.OpenMenu()
	u.ShowToast("hi", domain.SeverityInfo)
	unsubscribe()
	u.CloseMenu()

	require.Len(t, got, 2)
	assert.True(t, got[0].MenuOpen)
	require.NotNil(t, got[1].Toast)
	assert.Equal(t, "hi", got[1].Toast.Message)
}

func TestCursorType_Valid(t *testing.T) {
	assert.True(t, CursorPointer.Valid())
	assert.False(t, CursorType("crosshair").Valid())
}
