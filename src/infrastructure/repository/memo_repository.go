package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"simple-memo/src/domain"

	"github.com/sirupsen/logrus"
)

// MemoRepository is an in-memory implementation of domain.MemoRepository
type MemoRepository struct {
	mu     sync.RWMutex
	memos  []*domain.Memo
	lastID atomic.Int64
	logger *logrus.Logger
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(logger *logrus.Logger) *MemoRepository {
	return &MemoRepository{
		memos:  make([]*domain.Memo, 0),
		logger: logger,
	}
}

// Add stores a new memo and returns it with an assigned ID
func (r *MemoRepository) Add(ctx context.Context, content string) domain.Memo {
	r.mu.Lock()
	// 採番と追加を同じロック内で行い、一覧の順序とIDの順序を一致させる
	// IDは削除後も再利用しない
	memo := &domain.Memo{
		ID:      r.lastID.Add(1),
		Content: content,
	}
	r.memos = append(r.memos, memo)
	r.mu.Unlock()

	r.logger.WithField("memo_id", memo.ID).Debug("メモを保存しました")
	return *memo
}

// List returns a snapshot of all memos in insertion order
func (r *MemoRepository) List(ctx context.Context) []domain.Memo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Memo, len(r.memos))
	for i, memo := range r.memos {
		result[i] = *memo
	}
	return result
}

// FindByID retrieves a memo by ID
func (r *MemoRepository) FindByID(ctx context.Context, id int64) (domain.Memo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return *r.memos[i], true
	}
	return domain.Memo{}, false
}

// Update replaces the content of an existing memo
func (r *MemoRepository) Update(ctx context.Context, id int64, content string) (domain.Memo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Memo{}, false
	}

	r.memos[i].Content = content
	r.logger.WithField("memo_id", id).Debug("メモを更新しました")
	return *r.memos[i], true
}

// DeleteByID removes a memo and reports whether it existed
func (r *MemoRepository) DeleteByID(ctx context.Context, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}

	copy(r.memos[i:], r.memos[i+1:])
	r.memos[len(r.memos)-1] = nil
	r.memos = r.memos[:len(r.memos)-1]

	r.logger.WithField("memo_id", id).Debug("メモを削除しました")
	return true
}

// Count returns the number of stored memos
func (r *MemoRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.memos)
}

// indexOf は呼び出し側でロックを保持していること
func (r *MemoRepository) indexOf(id int64) int {
	for i, memo := range r.memos {
		if memo.ID == id {
			return i
		}
	}
	return -1
}
