package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/library-catalog/internal/errs"
	"github.com/avoronov/library-catalog/internal/model"
	repo_mocks "github.com/avoronov/library-catalog/internal/repository/mocks"
	"github.com/avoronov/library-catalog/internal/service/user"
)

func strPtr(s string) *string { return &s }

func TestService_Register(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.Equal(t, "e@x.com", u.Email)
			require.False(t, u.IsStaff)
			require.False(t, u.IsSuperuser)
			require.NotEqual(t, "test!23password", u.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("test!23password")))
			u.ID = 1
			return u, nil
		})

	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	created, err := svc.Register(context.Background(), model.UserCreateRequest{
		Email:    "e@x.com",
		Password: "test!23password",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
}

func TestService_Register_weakPassword(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockUserRepository(c)
	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	_, err := svc.Register(context.Background(), model.UserCreateRequest{
		Email:    "e@x.com",
		Password: "short",
	})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "password", ve.Field)
}

func TestService_Register_photoFetch(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.NotNil(t, u.Photo)
			require.Equal(t, "avatar.png", *u.Photo)
			return u, nil
		})

	mediaRoot := t.TempDir()
	svc := user.NewService(repo, user.Config{MediaRoot: mediaRoot}, zap.NewNop())

	_, err := svc.Register(context.Background(), model.UserCreateRequest{
		Email:    "e@x.com",
		Password: "test!23password",
		Photo:    strPtr(srv.URL + "/media/avatar.png"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(mediaRoot, "avatar.png"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))
}

func TestService_Register_photoFetchFailure(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := repo_mocks.NewMockUserRepository(c)
	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	_, err := svc.Register(context.Background(), model.UserCreateRequest{
		Email:    "e@x.com",
		Password: "test!23password",
		Photo:    strPtr(srv.URL + "/media/avatar.png"),
	})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "photo", ve.Field)
}

func TestService_Update_photoSameFilenameNoop(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	current := model.User{
		ID:    3,
		Email: "e@x.com",
		Photo: strPtr("avatar.png"),
	}

	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(current, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			// same base filename, stored value untouched, no fetch
			require.NotNil(t, u.Photo)
			require.Equal(t, "avatar.png", *u.Photo)
			return u, nil
		})

	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	// the url is unreachable on purpose: a matching filename must short-circuit
	_, err := svc.Update(context.Background(), 3, model.UserUpdateRequest{
		Photo: strPtr("http://127.0.0.1:1/media/avatar.png"),
	}, true)
	require.NoError(t, err)
}

func TestService_Update_fullRequiresEmail(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockUserRepository(c)
	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	_, err := svc.Update(context.Background(), 3, model.UserUpdateRequest{
		FirstName: strPtr("John"),
	}, false)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email", ve.Field)
}

func TestService_Update_mergesFields(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	current := model.User{
		ID:        3,
		Email:     "e@x.com",
		FirstName: strPtr("John"),
	}

	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(current, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.Equal(t, "e@x.com", u.Email)
			require.Equal(t, "John", *u.FirstName)
			require.Equal(t, "Doe", *u.LastName)
			return u, nil
		})

	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	_, err := svc.Update(context.Background(), 3, model.UserUpdateRequest{
		LastName: strPtr("Doe"),
	}, true)
	require.NoError(t, err)
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().
		UpdatePassword(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new!!!32password")))
			return nil
		})

	svc := user.NewService(repo, user.Config{MediaRoot: t.TempDir()}, zap.NewNop())

	require.NoError(t, svc.ChangePassword(context.Background(), 3, "new!!!32password"))

	err := svc.ChangePassword(context.Background(), 3, "123")
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
}
