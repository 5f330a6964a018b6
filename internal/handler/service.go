package handler

import (
	"context"

	"github.com/avoronov/library-catalog/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=service_mocks

type AuthService interface {
	Issue(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(token string) error
	Revoke(refreshToken string) error
	Resolve(ctx context.Context, accessToken string) (model.User, error)
}

type UserService interface {
	Register(ctx context.Context, req model.UserCreateRequest) (model.User, error)
	Update(ctx context.Context, id int64, req model.UserUpdateRequest, partial bool) (model.User, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, password string) error
}

type BookService interface {
	List(ctx context.Context, page, size int) (model.ListBooks, error)
	Get(ctx context.Context, id int64) (model.Book, error)
	Create(ctx context.Context, req model.BookCreateRequest) (model.Book, error)
	Update(ctx context.Context, id int64, req model.BookCreateRequest) (model.Book, error)
	PartialUpdate(ctx context.Context, id int64, req model.BookPatchRequest) (model.Book, error)
	Delete(ctx context.Context, id int64) error
}
