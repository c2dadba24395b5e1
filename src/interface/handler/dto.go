package handler

import (
	"simple-memo/src/validator"
)

// MemoRequestDTO represents HTTP request for creating or updating a memo
//
// 内容の長さや形式は検証しない
type MemoRequestDTO struct {
	Content string `json:"content"`
}

// MemoResponseDTO represents HTTP response for a memo
type MemoResponseDTO struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string                      `json:"error"`
	Message string                      `json:"message,omitempty"`
	Details []validator.ValidationError `json:"details,omitempty"`
}
