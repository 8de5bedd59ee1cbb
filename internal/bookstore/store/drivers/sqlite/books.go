package sqlite

import (
	"context"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
)

type booksRepo struct {
	db DBTX
}

const bookColumns = `id, title, author, isbn, price, published_date, genre, in_stock`

func (r *booksRepo) GetBookByID(ctx context.Context, id int64) (domain.Book, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price,
		&b.PublishedDate, &b.Genre, &b.InStock)
	if err != nil {
		return domain.Book{}, mapNotFound(err)
	}
	return b, nil
}

func (r *booksRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price,
			&b.PublishedDate, &b.Genre, &b.InStock); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *booksRepo) CreateBook(ctx context.Context, b domain.Book) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, isbn, price, published_date, genre, in_stock)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Title, b.Author, b.ISBN, b.Price, b.PublishedDate.UTC(), b.Genre, b.InStock)
	if err != nil {
		return 0, mapBookConflict(err)
	}
	return res.LastInsertId()
}

func (r *booksRepo) UpdateBook(ctx context.Context, b domain.Book) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE books
		 SET title = ?, author = ?, isbn = ?, price = ?, published_date = ?, genre = ?, in_stock = ?
		 WHERE id = ?`,
		b.Title, b.Author, b.ISBN, b.Price, b.PublishedDate.UTC(), b.Genre, b.InStock, b.ID)
	if err != nil {
		return mapBookConflict(err)
	}
	return requireRowAffected(res)
}

func (r *booksRepo) DeleteBook(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
