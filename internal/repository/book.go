package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/internal/errs"
	"github.com/avoronov/library-catalog/internal/model"
)

type BookRepository interface {
	List(ctx context.Context, page, size int) (model.ListBooks, error)
	Get(ctx context.Context, id int64) (model.Book, error)
	Create(ctx context.Context, book model.Book) (model.Book, error)
	Update(ctx context.Context, book model.Book) (model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) (*bookRepository, error) {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}, nil
}

const bookColumns = "id, title, author, cover, inventory, daily_fee"

func (r *bookRepository) List(ctx context.Context, page, size int) (model.ListBooks, error) {
	q := qb.Select("id", "title").
		From(booksTableName).
		OrderBy("title", "author")

	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("List", zap.String("query", query), zap.Any("args", args))

	items := make([]model.BookListItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return model.ListBooks{}, err
	}

	countQuery, countArgs, err := qb.Select("count(*)").From(booksTableName).ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: total,
		},
		Items: items,
	}, nil
}

func (r *bookRepository) Get(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Create(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "cover", "inventory", "daily_fee").
		Values(book.Title, book.Author, book.Cover, book.Inventory, book.DailyFee).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		if vErr := uniqueViolation(err); vErr != nil {
			return model.Book{}, vErr
		}
		r.log.Error("Create", zap.String("q", query), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "create book")
	}
	return created, nil
}

func (r *bookRepository) Update(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("cover", book.Cover).
		Set("inventory", book.Inventory).
		Set("daily_fee", book.DailyFee).
		Where(sq.Eq{"id": book.ID}).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		if vErr := uniqueViolation(err); vErr != nil {
			return model.Book{}, vErr
		}
		r.log.Error("Update", zap.String("q", query), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "update book")
	}
	return updated, nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
