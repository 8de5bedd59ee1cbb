package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store/drivers/sqlite"
	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      store.Store
	tokens     *command.TokenIssuer
	verifier   jwtx.Verifier
	dispatcher *command.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	secret := []byte("unit-test-secret-key-of-32-bytes")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	tokens := &command.TokenIssuer{
		Signer:   signer,
		Issuer:   "smartbookstore",
		Audience: []string{"smartbookstore-api"},
		TTL:      time.Hour,
	}

	d := command.NewDispatcher()
	d.Register(command.OpLogin, &command.LoginHandler{Store: s, Tokens: tokens})
	d.Register(command.OpRegister, &command.RegisterHandler{Store: s, Tokens: tokens})
	d.Register(command.OpRefreshToken, &command.RefreshTokenHandler{Store: s, Tokens: tokens})
	d.Register(command.OpGetProfile, &command.GetProfileHandler{Store: s})
	d.Register(command.OpDeactivateUser, &command.DeactivateUserHandler{Store: s})
	d.Register(command.OpListBooks, &command.ListBooksHandler{Store: s})
	d.Register(command.OpGetBook, &command.GetBookHandler{Store: s})
	d.Register(command.OpCreateBook, &command.CreateBookHandler{Store: s})
	d.Register(command.OpUpdateBook, &command.UpdateBookHandler{Store: s})
	d.Register(command.OpDeleteBook, &command.DeleteBookHandler{Store: s})

	return &fixture{
		store:      s,
		tokens:     tokens,
		verifier:   jwtx.NewVerifierHS256(secret, "smartbookstore", []string{"smartbookstore-api"}),
		dispatcher: d,
	}
}

func (f *fixture) register(t *testing.T, username, email, password string) command.SessionPayload {
	t.Helper()

	out := f.dispatcher.Dispatch(context.Background(), command.OpRegister, command.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, command.StatusOk, out.Status, "register failed: %s", out.Message)
	return out.Data.(command.SessionPayload)
}

func (f *fixture) userID(t *testing.T, username string) int64 {
	t.Helper()

	u, err := f.store.Users().GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	return u.ID
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "secret1")

	t.Run("success", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{
			Username: "alice", Password: "secret1",
		})
		require.True(t, out.IsOk())
		require.Empty(t, out.Message)

		payload := out.Data.(command.SessionPayload)
		require.NotEmpty(t, payload.Token)
		require.Equal(t, "alice", payload.Username)
		require.Equal(t, "alice@example.com", payload.Email)
		require.Equal(t, "User", payload.Role)
		require.True(t, payload.ExpiresAt.After(time.Now()))

		claims, err := f.verifier.Verify(payload.Token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
		require.Equal(t, "User", claims.Role)
	})

	t.Run("records last login", func(t *testing.T) {
		u, err := f.store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, u.LastLoginAt)
	})

	t.Run("blank input is invalid", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "", Password: "x"})
		require.Equal(t, command.StatusInvalidRequest, out.Status)

		out = f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "alice", Password: ""})
		require.Equal(t, command.StatusInvalidRequest, out.Status)

		// A whitespace-only password counts as blank, not as a wrong guess.
		out = f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "alice", Password: "   "})
		require.Equal(t, command.StatusInvalidRequest, out.Status)
	})

	t.Run("enumeration safe", func(t *testing.T) {
		wrongPass := f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{
			Username: "alice", Password: "wrong",
		})
		unknownUser := f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{
			Username: "nobody", Password: "secret1",
		})

		require.Equal(t, command.StatusInvalidCredentials, wrongPass.Status)
		require.Equal(t, command.StatusInvalidCredentials, unknownUser.Status)
		require.Equal(t, wrongPass.Message, unknownUser.Message)
		require.Nil(t, wrongPass.Data)
	})
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("success mints token and defaults role", func(t *testing.T) {
		payload := f.register(t, "bob", "bob@example.com", "secret1")
		require.NotEmpty(t, payload.Token)
		require.Equal(t, "User", payload.Role)
	})

	t.Run("blank fields rejected", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "x", Email: "", Password: "secret1",
		})
		require.Equal(t, command.StatusInvalidRequest, out.Status)
	})

	t.Run("whitespace-only password rejected", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "spacer", Email: "spacer@example.com", Password: "        ",
		})
		require.Equal(t, command.StatusInvalidRequest, out.Status)

		_, err := f.store.Users().GetUserByUsername(ctx, "spacer")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("password boundary", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "short", Email: "short@example.com", Password: "12345",
		})
		require.Equal(t, command.StatusWeakPassword, out.Status)

		out = f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "short", Email: "short@example.com", Password: "123456",
		})
		require.Equal(t, command.StatusOk, out.Status)
	})

	t.Run("duplicate username mints no token and no record", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "bob", Email: "second@example.com", Password: "secret1",
		})
		require.Equal(t, command.StatusDuplicateUsername, out.Status)
		require.Nil(t, out.Data)

		_, err := f.store.Users().GetUserByEmail(ctx, "second@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "someoneelse", Email: "bob@example.com", Password: "secret1",
		})
		require.Equal(t, command.StatusDuplicateEmail, out.Status)
	})

	t.Run("explicit role is honoured", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRegister, command.RegisterRequest{
			Username: "root", Email: "root@example.com", Password: "secret1", Role: "Admin",
		})
		require.True(t, out.IsOk())
		require.Equal(t, "Admin", out.Data.(command.SessionPayload).Role)
	})
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "secret1")
	aliceID := f.userID(t, "alice")

	t.Run("success", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRefreshToken, command.RefreshTokenRequest{UserID: aliceID})
		require.True(t, out.IsOk())

		payload := out.Data.(command.SessionPayload)
		claims, err := f.verifier.Verify(payload.Token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpRefreshToken, command.RefreshTokenRequest{UserID: 9999})
		require.Equal(t, command.StatusNotFound, out.Status)
	})

	t.Run("disabled user", func(t *testing.T) {
		require.NoError(t, f.store.Users().Deactivate(ctx, aliceID))

		out := f.dispatcher.Dispatch(ctx, command.OpRefreshToken, command.RefreshTokenRequest{UserID: aliceID})
		require.Equal(t, command.StatusAccountDisabled, out.Status)
	})
}

func TestGetProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "secret1")
	aliceID := f.userID(t, "alice")

	t.Run("strips credential material", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpGetProfile, command.GetProfileRequest{UserID: aliceID})
		require.True(t, out.IsOk())

		profile := out.Data.(command.ProfilePayload)
		require.Equal(t, aliceID, profile.ID)
		require.Equal(t, "alice", profile.Username)
		require.Equal(t, "alice@example.com", profile.Email)
		require.True(t, profile.IsActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpGetProfile, command.GetProfileRequest{UserID: 9999})
		require.Equal(t, command.StatusNotFound, out.Status)
	})
}

// Full register-login-profile-deactivate lifecycle in one pass.
func TestAccountLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload := f.register(t, "alice", "a@x.com", "secret1")
	require.NotEmpty(t, payload.Token)
	require.Equal(t, "User", payload.Role)

	out := f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "alice", Password: "secret1"})
	require.True(t, out.IsOk())
	session := out.Data.(command.SessionPayload)
	require.Equal(t, "alice", session.Username)
	require.Equal(t, "a@x.com", session.Email)
	require.Equal(t, "User", session.Role)

	out = f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, command.StatusInvalidCredentials, out.Status)

	aliceID := f.userID(t, "alice")
	out = f.dispatcher.Dispatch(ctx, command.OpGetProfile, command.GetProfileRequest{UserID: aliceID})
	require.True(t, out.IsOk())

	out = f.dispatcher.Dispatch(ctx, command.OpDeactivateUser, command.DeactivateUserRequest{UserID: aliceID})
	require.True(t, out.IsOk())
	require.False(t, out.Data.(command.ProfilePayload).IsActive)

	out = f.dispatcher.Dispatch(ctx, command.OpLogin, command.LoginRequest{Username: "alice", Password: "secret1"})
	require.Equal(t, command.StatusAccountDisabled, out.Status)
}

func TestDispatcher_UnknownOperation(t *testing.T) {
	f := newFixture(t)

	out := f.dispatcher.Dispatch(context.Background(), "NoSuchOp", nil)
	require.Equal(t, command.StatusNotFound, out.Status)
	require.Contains(t, out.Message, "NoSuchOp")
}

func TestDispatcher_WrongPayloadType(t *testing.T) {
	f := newFixture(t)

	out := f.dispatcher.Dispatch(context.Background(), command.OpLogin, "not-a-login-request")
	require.Equal(t, command.StatusInvalidRequest, out.Status)
}

func TestBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book := command.BookPayload{
		Title:         "The Go Programming Language",
		Author:        "Donovan & Kernighan",
		ISBN:          "978-0134190440",
		Price:         39.99,
		PublishedDate: time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC),
		Genre:         "Programming",
		InStock:       true,
	}

	t.Run("create and list", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpCreateBook, command.CreateBookRequest{Book: book})
		require.True(t, out.IsOk(), out.Message)
		created := out.Data.(command.BookPayload)
		require.Positive(t, created.ID)

		out = f.dispatcher.Dispatch(ctx, command.OpListBooks, command.ListBooksRequest{})
		require.True(t, out.IsOk())
		require.Len(t, out.Data.([]command.BookPayload), 1)
	})

	t.Run("validation", func(t *testing.T) {
		invalid := book
		invalid.Title = "  "
		out := f.dispatcher.Dispatch(ctx, command.OpCreateBook, command.CreateBookRequest{Book: invalid})
		require.Equal(t, command.StatusInvalidRequest, out.Status)

		invalid = book
		invalid.ISBN = "other-isbn"
		invalid.Price = -1
		out = f.dispatcher.Dispatch(ctx, command.OpCreateBook, command.CreateBookRequest{Book: invalid})
		require.Equal(t, command.StatusInvalidRequest, out.Status)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpCreateBook, command.CreateBookRequest{Book: book})
		require.Equal(t, command.StatusInvalidRequest, out.Status)
		require.Contains(t, out.Message, "ISBN")
	})

	t.Run("get update delete", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpListBooks, command.ListBooksRequest{})
		require.True(t, out.IsOk())
		existing := out.Data.([]command.BookPayload)[0]

		out = f.dispatcher.Dispatch(ctx, command.OpGetBook, command.GetBookRequest{ID: existing.ID})
		require.True(t, out.IsOk())

		existing.Price = 29.99
		existing.InStock = false
		out = f.dispatcher.Dispatch(ctx, command.OpUpdateBook, command.UpdateBookRequest{Book: existing})
		require.True(t, out.IsOk())

		out = f.dispatcher.Dispatch(ctx, command.OpGetBook, command.GetBookRequest{ID: existing.ID})
		require.True(t, out.IsOk())
		require.Equal(t, 29.99, out.Data.(command.BookPayload).Price)
		require.False(t, out.Data.(command.BookPayload).InStock)

		out = f.dispatcher.Dispatch(ctx, command.OpDeleteBook, command.DeleteBookRequest{ID: existing.ID})
		require.True(t, out.IsOk())

		out = f.dispatcher.Dispatch(ctx, command.OpGetBook, command.GetBookRequest{ID: existing.ID})
		require.Equal(t, command.StatusNotFound, out.Status)
	})

	t.Run("missing book", func(t *testing.T) {
		out := f.dispatcher.Dispatch(ctx, command.OpGetBook, command.GetBookRequest{ID: 4242})
		require.Equal(t, command.StatusNotFound, out.Status)

		out = f.dispatcher.Dispatch(ctx, command.OpDeleteBook, command.DeleteBookRequest{ID: 4242})
		require.Equal(t, command.StatusNotFound, out.Status)
	})
}

func TestTokenIssuer_ExpiryDerivedFromTTL(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "secret1")

	fixed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	f.tokens.Now = func() time.Time { return fixed }
	defer func() { f.tokens.Now = nil }()

	out := f.dispatcher.Dispatch(context.Background(), command.OpRefreshToken, command.RefreshTokenRequest{
		UserID: f.userID(t, "alice"),
	})
	require.True(t, out.IsOk())
	require.Equal(t, fixed.Add(time.Hour), out.Data.(command.SessionPayload).ExpiresAt)
}
