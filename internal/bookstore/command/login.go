package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/cryptox"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials and mints a session token.
type LoginHandler struct {
	Store  store.Store
	Tokens *TokenIssuer
}

func (h *LoginHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(LoginRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed login request")
	}

	log := slogx.FromContext(ctx)

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return Fail(StatusInvalidRequest, "Username and password are required")
	}

	user, err := h.Store.Users().GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Identical message to the wrong-password path so the response
			// does not reveal which usernames exist.
			return Fail(StatusInvalidCredentials, msgInvalidCredentials)
		}
		log.Error("login: user lookup failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	match, err := cryptox.VerifyPassword(req.Password, user.Salt, user.PasswordHash)
	if err != nil {
		log.Error("login: password verify failed", "user_id", user.ID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}
	if !match {
		return Fail(StatusInvalidCredentials, msgInvalidCredentials)
	}

	if !user.IsActive {
		return Fail(StatusAccountDisabled, msgAccountDisabled)
	}

	// Best effort: a failed telemetry write must not block the login.
	if err := h.Store.Users().RecordLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Warn("login: record last login failed", "user_id", user.ID, "err", err)
	}

	token, expiresAt, err := h.Tokens.IssueToken(user)
	if err != nil {
		log.Error("login: token issue failed", "user_id", user.ID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	return Ok(SessionPayload{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
}
