package handler

import (
	"errors"
	"net/http"

	"simple-memo/src/domain"
	"simple-memo/src/usecase"
	"simple-memo/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MemoHandler handles HTTP requests for memo operations
type MemoHandler struct {
	memoUsecase usecase.MemoUsecase
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(memoUsecase usecase.MemoUsecase, v *validator.CustomValidator, logger *logrus.Logger) *MemoHandler {
	return &MemoHandler{
		memoUsecase: memoUsecase,
		validator:   v,
		logger:      logger,
	}
}

// CreateMemo creates a new memo
func (h *MemoHandler) CreateMemo(c *gin.Context) {
	var req MemoRequestDTO
	if !h.bindRequest(c, &req) {
		return
	}

	memo := h.memoUsecase.AddMemo(c.Request.Context(), req.Content)
	c.JSON(http.StatusOK, toMemoResponseDTO(memo))
}

// ListMemos retrieves all memos
func (h *MemoHandler) ListMemos(c *gin.Context) {
	memos := h.memoUsecase.ListMemos(c.Request.Context())
	c.JSON(http.StatusOK, toMemoResponseDTOs(memos))
}

// GetMemo retrieves a memo by ID
func (h *MemoHandler) GetMemo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	memo, found := h.memoUsecase.GetMemo(c.Request.Context(), id)
	if !found {
		h.notFound(c, id)
		return
	}

	c.JSON(http.StatusOK, toMemoResponseDTO(memo))
}

// UpdateMemo updates the content of an existing memo
func (h *MemoHandler) UpdateMemo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req MemoRequestDTO
	if !h.bindRequest(c, &req) {
		return
	}

	memo, found := h.memoUsecase.UpdateMemo(c.Request.Context(), id, req.Content)
	if !found {
		h.notFound(c, id)
		return
	}

	c.JSON(http.StatusOK, toMemoResponseDTO(memo))
}

// DeleteMemo deletes a memo
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if !h.memoUsecase.DeleteMemo(c.Request.Context(), id) {
		h.notFound(c, id)
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper methods

func (h *MemoHandler) parseID(c *gin.Context) (int64, bool) {
	param := validator.MemoIDParam{ID: c.Param("id")}

	id, err := h.validator.ParseMemoID(param)
	if err != nil {
		h.logger.WithError(err).WithField("memo_id", param.ID).Warn("不正なメモID")

		resp := ErrorResponseDTO{
			Error:   "Invalid memo ID",
			Message: "Memo ID must be an integer",
		}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			resp.Details = validationErrors.Errors
		}
		c.JSON(http.StatusBadRequest, resp)
		return 0, false
	}

	return id, true
}

func (h *MemoHandler) bindRequest(c *gin.Context, req *MemoRequestDTO) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func (h *MemoHandler) notFound(c *gin.Context, id int64) {
	h.logger.WithField("memo_id", id).Info("メモが見つかりません")
	c.JSON(http.StatusNotFound, ErrorResponseDTO{
		Error: "Memo not found",
	})
}

func toMemoResponseDTO(memo domain.Memo) MemoResponseDTO {
	return MemoResponseDTO{
		ID:      memo.ID,
		Content: memo.Content,
	}
}

func toMemoResponseDTOs(memos []domain.Memo) []MemoResponseDTO {
	result := make([]MemoResponseDTO, len(memos))
	for i, memo := range memos {
		result[i] = toMemoResponseDTO(memo)
	}
	return result
}
