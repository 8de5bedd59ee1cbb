package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
)

// BooksHandler exposes the catalog operations over HTTP.
type BooksHandler struct {
	Dispatcher *command.Dispatcher
}

func (h *BooksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	out := h.Dispatcher.Dispatch(r.Context(), command.OpListBooks, command.ListBooksRequest{})
	writeOutcome(w, out)
}

func (h *BooksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpGetBook, command.GetBookRequest{ID: id})
	writeOutcome(w, out)
}

func (h *BooksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var book command.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpCreateBook, command.CreateBookRequest{Book: book})
	writeOutcome(w, out)
}

func (h *BooksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var book command.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}
	book.ID = id // the path wins over any id in the body

	out := h.Dispatcher.Dispatch(r.Context(), command.OpUpdateBook, command.UpdateBookRequest{Book: book})
	writeOutcome(w, out)
}

func (h *BooksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	out := h.Dispatcher.Dispatch(r.Context(), command.OpDeleteBook, command.DeleteBookRequest{ID: id})
	writeOutcome(w, out)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid id in path")
		return 0, false
	}
	return id, true
}
