package book_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/internal/model"
	repo_mocks "github.com/avoronov/library-catalog/internal/repository/mocks"
	"github.com/avoronov/library-catalog/internal/service/book"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func floatPtr(f float64) *float64 {
	return &f
}

func TestService_Create_defaults(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockBookRepository(c)
	repo.EXPECT().
		Create(gomock.Any(), model.Book{
			Title: "Test Book",
			Cover: model.CoverSoft,
		}).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			b.ID = 1
			return b, nil
		})

	svc := book.NewService(repo, nil, zap.NewNop())

	created, err := svc.Create(context.Background(), model.BookCreateRequest{
		Title: "Test Book",
		Cover: model.CoverSoft,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, 0, created.Inventory)
	require.Equal(t, 0.0, created.DailyFee)
}

func TestService_PartialUpdate_merges(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	current := model.Book{
		ID:        1,
		Title:     "Test Book",
		Author:    strPtr("John Doe"),
		Cover:     model.CoverHard,
		Inventory: 10,
		DailyFee:  5.99,
	}

	repo := repo_mocks.NewMockBookRepository(c)
	repo.EXPECT().Get(gomock.Any(), int64(1)).Return(current, nil)
	repo.EXPECT().
		Update(gomock.Any(), model.Book{
			ID:        1,
			Title:     "Test Book",
			Author:    strPtr("John Doe"),
			Cover:     model.CoverHard,
			Inventory: 10,
			DailyFee:  7.50,
		}).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			return b, nil
		})

	svc := book.NewService(repo, nil, zap.NewNop())

	updated, err := svc.PartialUpdate(context.Background(), 1, model.BookPatchRequest{
		DailyFee: floatPtr(7.50),
	})
	require.NoError(t, err)
	require.Equal(t, "Test Book", updated.Title)
	require.Equal(t, 10, updated.Inventory)
	require.Equal(t, 7.50, updated.DailyFee)
}

func TestService_Update_full(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockBookRepository(c)
	repo.EXPECT().
		Update(gomock.Any(), model.Book{
			ID:        1,
			Title:     "Updated Book",
			Author:    strPtr("John Doe"),
			Cover:     model.CoverHard,
			Inventory: 10,
			DailyFee:  5.98,
		}).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			return b, nil
		})

	svc := book.NewService(repo, nil, zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, model.BookCreateRequest{
		Title:     "Updated Book",
		Author:    strPtr("John Doe"),
		Cover:     model.CoverHard,
		Inventory: intPtr(10),
		DailyFee:  floatPtr(5.98),
	})
	require.NoError(t, err)
	require.Equal(t, "Updated Book", updated.Title)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := repo_mocks.NewMockBookRepository(c)
	repo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Book{ID: 1, Title: "Test Book"}, nil)
	repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	svc := book.NewService(repo, nil, zap.NewNop())
	require.NoError(t, svc.Delete(context.Background(), 1))
}
