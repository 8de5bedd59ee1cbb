package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
	"github.com/debashispanigrahi/smartbookstore/pkg/httpx"
	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

// LoginHandler exchanges a username/password pair for a session token.
type LoginHandler struct {
	Dispatcher *command.Dispatcher
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req command.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpLogin, req)
	writeOutcome(w, out)
}

// RegisterHandler creates an account. Requesting a role other than the
// default requires a valid admin token; otherwise the role silently falls
// back to the default so an anonymous caller cannot self-escalate.
type RegisterHandler struct {
	Dispatcher *command.Dispatcher
	Verifier   jwtx.Verifier
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req command.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	if req.Role != "" && req.Role != command.DefaultRole && !h.callerIsAdmin(r) {
		slogx.FromContext(r.Context()).Warn("register: role request denied",
			"requested_role", req.Role)
		req.Role = command.DefaultRole
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpRegister, req)
	writeOutcome(w, out)
}

// callerIsAdmin reports whether the request carries a valid bearer token for
// an admin. Registration is a public endpoint, so authentication here is
// optional and only consulted for role assignment.
func (h *RegisterHandler) callerIsAdmin(r *http.Request) bool {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return false
	}

	claims, err := h.Verifier.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")))
	if err != nil {
		return false
	}
	return claims.Role == AdminRole
}

// RefreshHandler mints a fresh token for the already-authenticated caller.
type RefreshHandler struct {
	Dispatcher *command.Dispatcher
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(w, r)
	if !ok {
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpRefreshToken,
		command.RefreshTokenRequest{UserID: userID})
	writeOutcome(w, out)
}

// ProfileHandler returns the caller's sanitized profile.
type ProfileHandler struct {
	Dispatcher *command.Dispatcher
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(w, r)
	if !ok {
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpGetProfile,
		command.GetProfileRequest{UserID: userID})
	writeOutcome(w, out)
}

// DeactivateHandler disables the caller's own account.
type DeactivateHandler struct {
	Dispatcher *command.Dispatcher
}

func (h *DeactivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(w, r)
	if !ok {
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpDeactivateUser,
		command.DeactivateUserRequest{UserID: userID})
	writeOutcome(w, out)
}

// subjectID pulls the numeric user id out of the verified token claims.
// The subject is always minted from a user id, so a parse failure means a
// token this service never issued.
func subjectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	sub := httpx.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("non-numeric token subject", "sub", sub)
		writeBadRequest(w, "Invalid token subject")
		return 0, false
	}
	return id, true
}
