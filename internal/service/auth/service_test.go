package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/library-catalog/internal/errs"
	"github.com/avoronov/library-catalog/internal/model"
	repo_mocks "github.com/avoronov/library-catalog/internal/repository/mocks"
	"github.com/avoronov/library-catalog/internal/service/auth"
)

func testConfig() auth.Config {
	return auth.Config{
		Secret:     "test-secret",
		AccessTTL:  time.Minute * 15,
		RefreshTTL: time.Hour * 24,
	}
}

func testUser(t *testing.T, password string) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return model.User{
		ID:           7,
		Email:        "e@x.com",
		PasswordHash: string(hash),
	}
}

func TestService_IssueAndResolve(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	user := testUser(t, "test!23password")
	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	svc := auth.NewService(repo, testConfig(), zap.NewNop())

	pair, err := svc.Issue(context.Background(), "e@x.com", "test!23password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	resolved, err := svc.Resolve(context.Background(), pair.Access)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.Equal(t, user.Email, resolved.Email)
}

func TestService_Issue_badCredentials(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	user := testUser(t, "test!23password")
	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)
	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@x.com").Return(model.User{}, errs.ErrNotFound)

	svc := auth.NewService(repo, testConfig(), zap.NewNop())

	_, err := svc.Issue(context.Background(), "e@x.com", "wrongpassword")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = svc.Issue(context.Background(), "nobody@x.com", "test!23password")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	user := testUser(t, "test!23password")
	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	svc := auth.NewService(repo, testConfig(), zap.NewNop())

	pair, err := svc.Issue(context.Background(), "e@x.com", "test!23password")
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	// an access token is not exchangeable
	_, err = svc.Refresh(context.Background(), pair.Access)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestService_RevokeBlocksRefresh(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	user := testUser(t, "test!23password")
	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)

	svc := auth.NewService(repo, testConfig(), zap.NewNop())

	pair, err := svc.Issue(context.Background(), "e@x.com", "test!23password")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(pair.Refresh))

	_, err = svc.Refresh(context.Background(), pair.Refresh)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	// access tokens cannot be revoked
	require.ErrorIs(t, svc.Revoke(pair.Access), errs.ErrUnauthorized)
}

func TestService_Verify(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	user := testUser(t, "test!23password")
	repo := repo_mocks.NewMockUserRepository(c)
	repo.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil).Times(2)

	svc := auth.NewService(repo, testConfig(), zap.NewNop())
	pair, err := svc.Issue(context.Background(), "e@x.com", "test!23password")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(pair.Access))
	require.NoError(t, svc.Verify(pair.Refresh))
	require.ErrorIs(t, svc.Verify("not.a.token"), errs.ErrUnauthorized)

	expiredCfg := testConfig()
	expiredCfg.AccessTTL = -time.Minute
	expiredSvc := auth.NewService(repo, expiredCfg, zap.NewNop())
	expiredPair, err := expiredSvc.Issue(context.Background(), "e@x.com", "test!23password")
	require.NoError(t, err)
	require.ErrorIs(t, expiredSvc.Verify(expiredPair.Access), errs.ErrUnauthorized)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "ok", password: "test!23password", wantErr: false},
		{name: "too short", password: "a1!b2", wantErr: true},
		{name: "entirely numeric", password: "1234567890", wantErr: true},
		{name: "too long", password: string(make([]byte, 129)), wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := auth.ValidatePassword(tt.password)
			if tt.wantErr {
				var ve *errs.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, "password", ve.Field)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
