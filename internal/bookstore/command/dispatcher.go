package command

import "context"

// Operation identifiers understood by the Dispatcher.
const (
	OpLogin          = "Login"
	OpRegister       = "Register"
	OpRefreshToken   = "RefreshToken"
	OpGetProfile     = "GetProfile"
	OpDeactivateUser = "DeactivateUser"
	OpListBooks      = "ListBooks"
	OpGetBook        = "GetBook"
	OpCreateBook     = "CreateBook"
	OpUpdateBook     = "UpdateBook"
	OpDeleteBook     = "DeleteBook"
)

// Handler executes one operation. Implementations are stateless and safe for
// concurrent use; every collaborator is injected at construction.
type Handler interface {
	Handle(ctx context.Context, req any) Outcome
}

// Dispatcher maps an operation identifier to exactly one handler. It holds no
// state beyond the registration table and performs no business logic.
type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register binds op to h, replacing any previous binding.
func (d *Dispatcher) Register(op string, h Handler) {
	d.handlers[op] = h
}

// Dispatch routes req to the handler registered for op and returns its
// outcome unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, op string, req any) Outcome {
	h, ok := d.handlers[op]
	if !ok {
		return Fail(StatusNotFound, "Unknown operation: "+op)
	}
	return h.Handle(ctx, req)
}
