package domain

import "context"

// MemoRepository defines the interface for memo data operations
//
// 見つからない場合はエラーではなく false を返す
type MemoRepository interface {
	Add(ctx context.Context, content string) Memo
	List(ctx context.Context) []Memo
	FindByID(ctx context.Context, id int64) (Memo, bool)
	Update(ctx context.Context, id int64, content string) (Memo, bool)
	DeleteByID(ctx context.Context, id int64) bool
	Count(ctx context.Context) int
}
