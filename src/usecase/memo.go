package usecase

import (
	"context"

	"simple-memo/src/domain"

	"github.com/sirupsen/logrus"
)

// MemoUsecase defines the interface for memo business logic
type MemoUsecase interface {
	AddMemo(ctx context.Context, content string) domain.Memo
	ListMemos(ctx context.Context) []domain.Memo
	GetMemo(ctx context.Context, id int64) (domain.Memo, bool)
	UpdateMemo(ctx context.Context, id int64, content string) (domain.Memo, bool)
	DeleteMemo(ctx context.Context, id int64) bool
}

type memoUsecase struct {
	memoRepo domain.MemoRepository
	logger   *logrus.Logger
}

// NewMemoUsecase creates a new memo usecase
func NewMemoUsecase(memoRepo domain.MemoRepository, logger *logrus.Logger) MemoUsecase {
	return &memoUsecase{
		memoRepo: memoRepo,
		logger:   logger,
	}
}

// AddMemo creates a new memo; the ID is assigned by the repository
func (u *memoUsecase) AddMemo(ctx context.Context, content string) domain.Memo {
	memo := u.memoRepo.Add(ctx, content)
	u.logger.WithField("memo_id", memo.ID).Info("メモを作成しました")
	return memo
}

// ListMemos retrieves all memos
func (u *memoUsecase) ListMemos(ctx context.Context) []domain.Memo {
	return u.memoRepo.List(ctx)
}

// GetMemo retrieves a memo by ID
func (u *memoUsecase) GetMemo(ctx context.Context, id int64) (domain.Memo, bool) {
	return u.memoRepo.FindByID(ctx, id)
}

// UpdateMemo replaces the content of an existing memo.
// false is returned when no memo has the given ID.
func (u *memoUsecase) UpdateMemo(ctx context.Context, id int64, content string) (domain.Memo, bool) {
	if _, ok := u.memoRepo.FindByID(ctx, id); !ok {
		u.logger.WithField("memo_id", id).Debug("更新対象のメモが見つかりません")
		return domain.Memo{}, false
	}

	// 確認後に削除された場合も Update が false を返す
	memo, ok := u.memoRepo.Update(ctx, id, content)
	if ok {
		u.logger.WithField("memo_id", id).Info("メモを更新しました")
	}
	return memo, ok
}

// DeleteMemo deletes a memo
func (u *memoUsecase) DeleteMemo(ctx context.Context, id int64) bool {
	deleted := u.memoRepo.DeleteByID(ctx, id)
	if deleted {
		u.logger.WithField("memo_id", id).Info("メモを削除しました")
	} else {
		u.logger.WithField("memo_id", id).Debug("削除対象のメモが見つかりません")
	}
	return deleted
}
