package store

import (
	"context"
	"errors"
	"time"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrUsernameTaken = errors.New("store: username already exists")
	ErrEmailTaken    = errors.New("store: email already exists")
	ErrISBNTaken     = errors.New("store: isbn already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Books() Books

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id, active or not.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login. Inactive users are returned
	// so the caller can distinguish a disabled account from a bad password.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used to reject duplicate registrations.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id.
	// Returns ErrUsernameTaken or ErrEmailTaken on a uniqueness conflict.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// RecordLogin stamps last_login_at after a successful credential check.
	RecordLogin(ctx context.Context, userID int64, at time.Time) error

	// Deactivate flips is_active off. The user's tokens stop refreshing.
	Deactivate(ctx context.Context, userID int64) error
}

type Books interface {
	// GetBookByID returns a book by id.
	GetBookByID(ctx context.Context, id int64) (domain.Book, error)

	// ListBooks returns the whole catalog ordered by title.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// CreateBook inserts a new book and returns the assigned id.
	// Returns ErrISBNTaken on a uniqueness conflict.
	CreateBook(ctx context.Context, b domain.Book) (int64, error)

	// UpdateBook replaces all mutable fields of an existing book.
	UpdateBook(ctx context.Context, b domain.Book) error

	// DeleteBook removes a book by id.
	DeleteBook(ctx context.Context, id int64) error
}
