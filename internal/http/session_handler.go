package http

import (
	"log/slog"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/session"
	"github.com/fjod/go_cart/storefront/internal/visitor"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	visitors VisitorSource
	log      *slog.Logger
}

func NewSessionHandler(visitors VisitorSource, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		visitors: visitors,
		log:      log,
	}
}

type SessionResponse struct {
	session.UIState
	Phase      session.Phase `json:"phase"`
	ShowChrome bool          `json:"show_chrome"`
}

type ShowToastRequestDTO struct {
	Message  string          `json:"message"`
	Severity domain.Severity `json:"severity,omitempty"`
}

type CursorRequestDTO struct {
	Cursor session.CursorType `json:"cursor"`
}

type FlagRequestDTO struct {
	Value bool `json:"value"`
}

func sessionResponse(v *visitor.Visitor, route string) SessionResponse {
	state := v.UI.State()
	return SessionResponse{
		UIState:    state,
		Phase:      v.Landing.Phase(),
		ShowChrome: session.ShouldShowChrome(state.HasEntered, route),
	}
}

// GetSession reports the UI state. The route query parameter (default "/") drives show_chrome.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	route := r.URL.Query().Get("route")
	if route == "" {
		route = session.HomeRoute
	}
	respondJSON(w, http.StatusOK, sessionResponse(v, route))
}

// Enter records the first interaction with the landing splash.
func (h *SessionHandler) Enter(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	status := http.StatusOK
	if v.Landing.Begin() {
		status = http.StatusAccepted
	}
	respondJSON(w, status, sessionResponse(v, session.HomeRoute))
}

func (h *SessionHandler) ShowToast(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	var req ShowToastRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_message", "message is required")
		return
	}
	if req.Severity != "" && !req.Severity.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_severity", "severity must be success, error or info")
		return
	}

	respondJSON(w, http.StatusCreated, v.UI.ShowToast(req.Message, req.Severity))
}

func (h *SessionHandler) HideToast(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	v.UI.HideToast()
	w.WriteHeader(http.StatusNoContent)
}

// Menu handles /session/menu/{action} with action toggle, open or close.
func (h *SessionHandler) Menu(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	switch chi.URLParam(r, "action") {
	case "toggle":
		v.UI.ToggleMenu()
	case "open":
		v.UI.OpenMenu()
	case "close":
		v.UI.CloseMenu()
	default:
		respondError(w, http.StatusNotFound, "not_found", "unknown menu action")
		return
	}
	respondJSON(w, http.StatusOK, v.UI.State())
}

func (h *SessionHandler) SetCursor(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	var req CursorRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Cursor.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_cursor", "unknown cursor type")
		return
	}

	v.UI.SetCursor(req.Cursor)
	respondJSON(w, http.StatusOK, v.UI.State())
}

func (h *SessionHandler) SetLoading(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, (*session.UI).SetLoading)
}

func (h *SessionHandler) SetColorRevealed(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, (*session.UI).SetColorRevealed)
}

func (h *SessionHandler) setFlag(w http.ResponseWriter, r *http.Request, set func(*session.UI, bool)) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	var req FlagRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	set(v.UI, req.Value)
	respondJSON(w, http.StatusOK, v.UI.State())
}
