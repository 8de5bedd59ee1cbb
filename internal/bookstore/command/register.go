package command

import (
	"context"
	"errors"
	"strings"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/cryptox"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

const minPasswordLength = 6

// DefaultRole is assigned when a registration does not name a role. Whether a
// caller may request any other role is decided by the transport layer, which
// must hold back non-default roles from unauthenticated requests.
const DefaultRole = "User"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// RegisterHandler creates a user and mints a first session token.
type RegisterHandler struct {
	Store  store.Store
	Tokens *TokenIssuer
}

func (h *RegisterHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(RegisterRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed registration request")
	}

	log := slogx.FromContext(ctx)

	if strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return Fail(StatusInvalidRequest, "Username, email, and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return Fail(StatusWeakPassword, msgWeakPassword)
	}

	role := req.Role
	if role == "" {
		role = DefaultRole
	}

	// Pre-checks give friendly errors; the unique constraints below remain
	// the source of truth under concurrent registration.
	if _, err := h.Store.Users().GetUserByUsername(ctx, req.Username); err == nil {
		return Fail(StatusDuplicateUsername, msgUsernameTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("register: username lookup failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}
	if _, err := h.Store.Users().GetUserByEmail(ctx, req.Email); err == nil {
		return Fail(StatusDuplicateEmail, msgEmailTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("register: email lookup failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		log.Error("register: salt generation failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}
	hash, err := cryptox.HashPassword(req.Password, salt)
	if err != nil {
		log.Error("register: password hash failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	// Bail out on cancellation before the mutating call rather than after.
	if err := ctx.Err(); err != nil {
		return Fail(StatusInternal, msgInternal)
	}

	user := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		IsActive:     true,
	}

	id, err := h.Store.Users().CreateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			return Fail(StatusDuplicateUsername, msgUsernameTaken)
		case errors.Is(err, store.ErrEmailTaken):
			return Fail(StatusDuplicateEmail, msgEmailTaken)
		}
		log.Error("register: create user failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}
	user.ID = id

	token, expiresAt, err := h.Tokens.IssueToken(user)
	if err != nil {
		log.Error("register: token issue failed", "user_id", id, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	log.Info("user registered", "user_id", id, "username", user.Username, "role", user.Role)

	return Ok(SessionPayload{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
}
