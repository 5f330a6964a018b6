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

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, user model.User) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) (*userRepository, error) {
	return &userRepository{
		db:  db,
		log: log.Named("user-repo"),
	}, nil
}

const userColumns = "id, email, username, first_name, last_name, password_hash, is_staff, is_superuser, birth_date, photo"

func (r *userRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("email", "username", "first_name", "last_name", "password_hash", "is_staff", "is_superuser", "birth_date", "photo").
		Values(user.Email, user.Username, user.FirstName, user.LastName, user.PasswordHash, user.IsStaff, user.IsSuperuser, user.BirthDate, user.Photo).
		Suffix("returning " + userColumns).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var created model.User
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		if vErr := uniqueViolation(err); vErr != nil {
			return model.User{}, vErr
		}
		r.log.Error("Create", zap.String("q", query), zap.Error(err))
		return model.User{}, errors.Wrap(err, "create user")
	}
	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query, args, err := qb.Select(userColumns).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query, args, err := qb.Select(userColumns).
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query, args, err := qb.Update(usersTableName).
		Set("email", user.Email).
		Set("username", user.Username).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("birth_date", user.BirthDate).
		Set("photo", user.Photo).
		Where(sq.Eq{"id": user.ID}).
		Suffix("returning " + userColumns).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var updated model.User
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		if vErr := uniqueViolation(err); vErr != nil {
			return model.User{}, vErr
		}
		r.log.Error("Update", zap.String("q", query), zap.Error(err))
		return model.User{}, errors.Wrap(err, "update user")
	}
	return updated, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := qb.Update(usersTableName).
		Set("password_hash", passwordHash).
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

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(usersTableName).
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
