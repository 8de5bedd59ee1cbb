package http

import (
	"net/http"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
	"github.com/debashispanigrahi/smartbookstore/pkg/httpx"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// statusCode maps an outcome classification to its wire-level status code.
// This is the only place the mapping lives; handlers never pick codes.
func statusCode(s command.Status) int {
	switch s {
	case command.StatusOk:
		return http.StatusOK
	case command.StatusInvalidRequest,
		command.StatusWeakPassword,
		command.StatusDuplicateUsername,
		command.StatusDuplicateEmail:
		return http.StatusBadRequest
	case command.StatusInvalidCredentials:
		return http.StatusUnauthorized
	case command.StatusAccountDisabled:
		return http.StatusForbidden
	case command.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeOutcome serializes an outcome with the uniform envelope.
func writeOutcome(w http.ResponseWriter, out command.Outcome) {
	code := statusCode(out.Status)
	if out.IsOk() {
		httpx.WriteJSON(w, code, dataEnvelope{Data: out.Data})
		return
	}
	httpx.WriteJSON(w, code, errorEnvelope{Error: out.Message, Status: string(out.Status)})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	httpx.WriteJSON(w, http.StatusBadRequest, errorEnvelope{
		Error:  msg,
		Status: string(command.StatusInvalidRequest),
	})
}
