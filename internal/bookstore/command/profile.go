package command

import (
	"context"
	"errors"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

type GetProfileRequest struct {
	UserID int64
}

// GetProfileHandler returns the caller's profile with the hash and salt
// stripped. Credential material never crosses this boundary.
type GetProfileHandler struct {
	Store store.Store
}

func (h *GetProfileHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(GetProfileRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed profile request")
	}

	user, err := h.Store.Users().GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail(StatusNotFound, msgUserNotFound)
		}
		slogx.FromContext(ctx).Error("profile: user lookup failed", "user_id", req.UserID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	return Ok(sanitizeProfile(user))
}

func sanitizeProfile(u domain.User) ProfilePayload {
	return ProfilePayload{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

type DeactivateUserRequest struct {
	UserID int64
}

// DeactivateUserHandler flips a user inactive. Existing tokens stay valid
// until expiry but can no longer be refreshed, and logins are refused.
type DeactivateUserHandler struct {
	Store store.Store
}

func (h *DeactivateUserHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(DeactivateUserRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed deactivation request")
	}

	log := slogx.FromContext(ctx)

	if err := h.Store.Users().Deactivate(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail(StatusNotFound, msgUserNotFound)
		}
		log.Error("deactivate: update failed", "user_id", req.UserID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	user, err := h.Store.Users().GetUserByID(ctx, req.UserID)
	if err != nil {
		log.Error("deactivate: readback failed", "user_id", req.UserID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	log.Info("user deactivated", "user_id", req.UserID)
	return Ok(sanitizeProfile(user))
}
