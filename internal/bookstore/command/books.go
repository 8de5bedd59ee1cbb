package command

import (
	"context"
	"errors"
	"strings"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

type ListBooksRequest struct{}

type GetBookRequest struct {
	ID int64
}

type CreateBookRequest struct {
	Book BookPayload
}

type UpdateBookRequest struct {
	Book BookPayload
}

type DeleteBookRequest struct {
	ID int64
}

// ListBooksHandler returns the whole catalog.
type ListBooksHandler struct {
	Store store.Store
}

func (h *ListBooksHandler) Handle(ctx context.Context, in any) Outcome {
	if _, ok := in.(ListBooksRequest); !ok {
		return Fail(StatusInvalidRequest, "Malformed list request")
	}

	books, err := h.Store.Books().ListBooks(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("books: list failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	payload := make([]BookPayload, 0, len(books))
	for _, b := range books {
		payload = append(payload, fromDomainBook(b))
	}
	return Ok(payload)
}

// GetBookHandler fetches a single catalog entry.
type GetBookHandler struct {
	Store store.Store
}

func (h *GetBookHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(GetBookRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed book request")
	}

	book, err := h.Store.Books().GetBookByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail(StatusNotFound, msgBookNotFound)
		}
		slogx.FromContext(ctx).Error("books: lookup failed", "book_id", req.ID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	return Ok(fromDomainBook(book))
}

// CreateBookHandler adds a catalog entry.
type CreateBookHandler struct {
	Store store.Store
}

func (h *CreateBookHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(CreateBookRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed book request")
	}

	if msg := validateBook(req.Book); msg != "" {
		return Fail(StatusInvalidRequest, msg)
	}

	log := slogx.FromContext(ctx)

	id, err := h.Store.Books().CreateBook(ctx, toDomainBook(req.Book))
	if err != nil {
		if errors.Is(err, store.ErrISBNTaken) {
			return Fail(StatusInvalidRequest, msgISBNTaken)
		}
		log.Error("books: create failed", "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	created := req.Book
	created.ID = id
	log.Info("book created", "book_id", id, "title", created.Title)
	return Ok(created)
}

// UpdateBookHandler replaces a catalog entry's mutable fields.
type UpdateBookHandler struct {
	Store store.Store
}

func (h *UpdateBookHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(UpdateBookRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed book request")
	}

	if msg := validateBook(req.Book); msg != "" {
		return Fail(StatusInvalidRequest, msg)
	}

	err := h.Store.Books().UpdateBook(ctx, toDomainBook(req.Book))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return Fail(StatusNotFound, msgBookNotFound)
		case errors.Is(err, store.ErrISBNTaken):
			return Fail(StatusInvalidRequest, msgISBNTaken)
		}
		slogx.FromContext(ctx).Error("books: update failed", "book_id", req.Book.ID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	return Ok(req.Book)
}

// DeleteBookHandler removes a catalog entry.
type DeleteBookHandler struct {
	Store store.Store
}

func (h *DeleteBookHandler) Handle(ctx context.Context, in any) Outcome {
	req, ok := in.(DeleteBookRequest)
	if !ok {
		return Fail(StatusInvalidRequest, "Malformed book request")
	}

	if err := h.Store.Books().DeleteBook(ctx, req.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail(StatusNotFound, msgBookNotFound)
		}
		slogx.FromContext(ctx).Error("books: delete failed", "book_id", req.ID, "err", err)
		return Fail(StatusInternal, msgInternal)
	}

	return Ok(map[string]int64{"id": req.ID})
}

func validateBook(b BookPayload) string {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return "Title is required"
	case strings.TrimSpace(b.Author) == "":
		return "Author is required"
	case strings.TrimSpace(b.ISBN) == "":
		return "ISBN is required"
	case b.Price < 0:
		return "Price must not be negative"
	}
	return ""
}

func toDomainBook(b BookPayload) domain.Book {
	return domain.Book{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
		InStock:       b.InStock,
	}
}

func fromDomainBook(b domain.Book) BookPayload {
	return BookPayload{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
		InStock:       b.InStock,
	}
}
