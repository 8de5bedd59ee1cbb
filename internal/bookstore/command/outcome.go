package command

import "time"

// Status classifies the result of an operation. The transport layer maps
// these to wire-level status codes; handlers never deal in HTTP codes.
type Status string

const (
	StatusOk                 Status = "Ok"
	StatusInvalidRequest     Status = "InvalidRequest"
	StatusInvalidCredentials Status = "InvalidCredentials"
	StatusAccountDisabled    Status = "AccountDisabled"
	StatusDuplicateUsername  Status = "DuplicateUsername"
	StatusDuplicateEmail     Status = "DuplicateEmail"
	StatusWeakPassword       Status = "WeakPassword"
	StatusNotFound           Status = "NotFound"
	StatusInternal           Status = "Internal"
)

// Outcome is the uniform result of every handler. Exactly one of Data or
// Message is populated: Data on StatusOk, Message otherwise.
type Outcome struct {
	Status  Status
	Data    any
	Message string
}

func Ok(data any) Outcome {
	return Outcome{Status: StatusOk, Data: data}
}

func Fail(status Status, message string) Outcome {
	return Outcome{Status: status, Message: message}
}

func (o Outcome) IsOk() bool { return o.Status == StatusOk }

// Error messages surfaced to callers. Login failures share one message so a
// caller cannot tell an unknown username from a wrong password.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgAccountDisabled    = "Account is disabled"
	msgUsernameTaken      = "Username already exists"
	msgEmailTaken         = "Email already exists"
	msgWeakPassword       = "Password must be at least 6 characters long"
	msgUserNotFound       = "User not found"
	msgBookNotFound       = "Book not found"
	msgISBNTaken          = "A book with this ISBN already exists"
	msgInternal           = "An unexpected error occurred"
)

// SessionPayload is the success payload for Login, Register, and RefreshToken.
type SessionPayload struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProfilePayload is a user record with the credential material stripped.
type ProfilePayload struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// BookPayload is the wire shape of a catalog entry.
type BookPayload struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Price         float64   `json:"price"`
	PublishedDate time.Time `json:"publishedDate"`
	Genre         string    `json:"genre"`
	InStock       bool      `json:"inStock"`
}
