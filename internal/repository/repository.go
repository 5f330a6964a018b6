package repository

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avoronov/library-catalog/internal/errs"
)

//go:generate mockgen -source=user.go -source=book.go -destination=mocks/mock_repository.go -package=repo_mocks

const (
	usersTableName = `users`
	booksTableName = `books`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// uniqueViolation maps a postgres unique-constraint error to a field-level
// validation error. Returns nil when err is something else.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return errs.NewValidation("email", "a user with that email already exists")
	case "users_username_key":
		return errs.NewValidation("username", "a user with that username already exists")
	case "books_title_author_key":
		return errs.NewValidation("title", "a book with that title and author already exists")
	}
	return nil
}
