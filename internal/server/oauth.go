package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/webplayer/internal/services"
	"github.com/desertthunder/webplayer/internal/shared"
)

// FallbackErrorCode is sent to the page when an exchange fails without an OAuth error code.
const FallbackErrorCode = "invalid_token"

// ProxyHandler serves the confidential half of the authorization code flow.
//
// It holds no per-user state: every request is answered from its own parameters.
type ProxyHandler struct {
	auth   services.Authorizer
	logger *log.Logger
}

// NewProxyHandler creates a handler for /login, /callback and /refresh_token.
func NewProxyHandler(auth services.Authorizer, logger *log.Logger) *ProxyHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ProxyHandler{auth: auth, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ProxyHandler) Routes() []string {
	return []string{"/login", "/callback", "/refresh_token"}
}

// ServeHTTP dispatches on path. Only GET (and HEAD) are accepted.
func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowed(http.MethodGet, r.Method) {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/login":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	case "/refresh_token":
		h.refresh(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProxyHandler) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.auth.AuthURL(), http.StatusFound)
}

// callback redirects to /?access_token=..&refresh_token=.. on success and /?error=.. otherwise.
func (h *ProxyHandler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if reason := q.Get("error"); reason != "" {
		h.logger.Warn("authorization denied", "error", reason, "request_id", RequestIDFrom(r.Context()))
		redirectWithError(w, r, reason)
		return
	}

	token, err := h.auth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		h.logger.Error("token exchange failed", "err", err, "request_id", RequestIDFrom(r.Context()))
		redirectWithError(w, r, services.ErrorCode(err, FallbackErrorCode))
		return
	}

	params := url.Values{
		"access_token":  {token.AccessToken},
		"refresh_token": {token.RefreshToken},
	}
	http.Redirect(w, r, "/?"+params.Encode(), http.StatusFound)
}

func (h *ProxyHandler) refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.URL.Query().Get("refresh_token")
	if refreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing refresh_token"})
		return
	}

	token, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.logger.Error("token refresh failed", "err", err, "request_id", RequestIDFrom(r.Context()))

		status := http.StatusBadGateway
		if errors.Is(err, shared.ErrNoRefreshToken) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": services.ErrorCode(err, "refresh_failed")})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token.AccessToken})
}

func redirectWithError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, "/?"+url.Values{"error": {reason}}.Encode(), http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
