package domain

// Memo represents a memo domain entity
type Memo struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}
