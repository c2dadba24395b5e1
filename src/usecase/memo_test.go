package usecase_test

import (
	"context"
	"io"
	"testing"

	"simple-memo/src/domain"
	"simple-memo/src/infrastructure/repository"
	"simple-memo/src/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMemoRepository は domain.MemoRepository のモック実装
type MockMemoRepository struct {
	mock.Mock
}

func (m *MockMemoRepository) Add(ctx context.Context, content string) domain.Memo {
	args := m.Called(ctx, content)
	return args.Get(0).(domain.Memo)
}

func (m *MockMemoRepository) List(ctx context.Context) []domain.Memo {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Memo)
}

func (m *MockMemoRepository) FindByID(ctx context.Context, id int64) (domain.Memo, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Memo), args.Bool(1)
}

func (m *MockMemoRepository) Update(ctx context.Context, id int64, content string) (domain.Memo, bool) {
	args := m.Called(ctx, id, content)
	return args.Get(0).(domain.Memo), args.Bool(1)
}

func (m *MockMemoRepository) DeleteByID(ctx context.Context, id int64) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockMemoRepository) Count(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestMemoUsecase_AddMemo(t *testing.T) {
	mockRepo := new(MockMemoRepository)
	mockRepo.On("Add", mock.Anything, "buy milk").Return(domain.Memo{ID: 1, Content: "buy milk"})

	u := usecase.NewMemoUsecase(mockRepo, newTestLogger())
	memo := u.AddMemo(context.Background(), "buy milk")

	assert.Equal(t, domain.Memo{ID: 1, Content: "buy milk"}, memo)
	mockRepo.AssertExpectations(t)
}

func TestMemoUsecase_UpdateMemo(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		mockSetup func(*MockMemoRepository)
		expected  domain.Memo
		found     bool
	}{
		{
			name: "successful update",
			id:   1,
			mockSetup: func(m *MockMemoRepository) {
				m.On("FindByID", mock.Anything, int64(1)).Return(domain.Memo{ID: 1, Content: "old"}, true)
				m.On("Update", mock.Anything, int64(1), "new").Return(domain.Memo{ID: 1, Content: "new"}, true)
			},
			expected: domain.Memo{ID: 1, Content: "new"},
			found:    true,
		},
		{
			name: "memo not found",
			id:   99,
			mockSetup: func(m *MockMemoRepository) {
				m.On("FindByID", mock.Anything, int64(99)).Return(domain.Memo{}, false)
			},
			found: false,
		},
		{
			name: "deleted between lookup and update",
			id:   2,
			mockSetup: func(m *MockMemoRepository) {
				m.On("FindByID", mock.Anything, int64(2)).Return(domain.Memo{ID: 2, Content: "old"}, true)
				m.On("Update", mock.Anything, int64(2), "new").Return(domain.Memo{}, false)
			},
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemoRepository)
			tt.mockSetup(mockRepo)

			u := usecase.NewMemoUsecase(mockRepo, newTestLogger())
			memo, ok := u.UpdateMemo(context.Background(), tt.id, "new")

			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, memo)
			}
			mockRepo.AssertExpectations(t)
			if !tt.found && tt.id == 99 {
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMemoUsecase_DeleteMemo(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		deleted  bool
		expected bool
	}{
		{name: "existing memo", id: 1, deleted: true, expected: true},
		{name: "unknown memo", id: 2, deleted: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemoRepository)
			mockRepo.On("DeleteByID", mock.Anything, tt.id).Return(tt.deleted)

			u := usecase.NewMemoUsecase(mockRepo, newTestLogger())
			assert.Equal(t, tt.expected, u.DeleteMemo(context.Background(), tt.id))
			mockRepo.AssertExpectations(t)
		})
	}
}

// 実際のインメモリリポジトリを使ったシナリオテスト
func TestMemoUsecase_Scenario(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	u := usecase.NewMemoUsecase(repository.NewMemoRepository(logger), logger)

	milk := u.AddMemo(ctx, "buy milk")
	assert.Equal(t, int64(1), milk.ID)
	mom := u.AddMemo(ctx, "call mom")
	assert.Equal(t, int64(2), mom.ID)

	assert.Equal(t, []domain.Memo{
		{ID: 1, Content: "buy milk"},
		{ID: 2, Content: "call mom"},
	}, u.ListMemos(ctx))

	updated, ok := u.UpdateMemo(ctx, 1, "buy bread")
	require.True(t, ok)
	assert.Equal(t, domain.Memo{ID: 1, Content: "buy bread"}, updated)

	assert.True(t, u.DeleteMemo(ctx, 2))
	assert.Equal(t, []domain.Memo{{ID: 1, Content: "buy bread"}}, u.ListMemos(ctx))

	assert.False(t, u.DeleteMemo(ctx, 2))

	_, ok = u.UpdateMemo(ctx, 2, "x")
	assert.False(t, ok)

	_, ok = u.GetMemo(ctx, 2)
	assert.False(t, ok)

	next := u.AddMemo(ctx, "after delete")
	assert.Equal(t, int64(3), next.ID)
}
