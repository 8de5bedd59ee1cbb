package command

import (
	"context"
	"errors"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

type RefreshTokenRequest struct {
	UserID int64
}

// RefreshTokenHandler mints a fresh token for an already-authenticated user.
// The transport layer is responsible for validating the presented token and
// extracting the user id from its claims.
type RefreshTokenHandler struct {
	Store  store.Store
	Tokens *TokenIssuer
}

func (h *RefreshTokenHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(RefreshTokenRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed refresh request")
	}

	log := slogx.FromContext(ctx)

	user, err := h.Store.Users().GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail(StatusNotFound, msgUserNotFound)
		}
		log.Error("refresh: user lookup failed", "user_id", req.UserID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	if !user.IsActive {
		return Fail(StatusAccountDisabled, msgAccountDisabled)
	}

	token, expiresAt, err := h.Tokens.IssueToken(user)
	if err != nil {
		log.Error("refresh: token issue failed", "user_id", user.ID, "err", err)
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
