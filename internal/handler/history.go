package handlers

import (
	"strconv"

	"TransLingo/internal/models"
	"TransLingo/pkg/errors"
	"TransLingo/pkg/logger"
	"TransLingo/pkg/middleware"
	"TransLingo/pkg/response"
	"TransLingo/pkg/search"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type historyListResponse struct {
	Total   int64                       `json:"total"`
	Entries []models.TranslationHistory `json:"entries"`
}

// handleListHistory 当前用户历史记录，时间倒序分页
func (h *Handlers) handleListHistory(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := models.ListHistory(h.db, middleware.CurrentUserID(c), offset, limit)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, "ok", historyListResponse{Total: total, Entries: entries})
}

// handleDeleteHistory 删除一条历史记录，仅限本人
func (h *Handlers) handleDeleteHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.FailWithError(c, errors.WithCode(errors.CodeBadRequest, "invalid history id"))
		return
	}

	if err := models.DeleteHistory(h.db, middleware.CurrentUserID(c), uint(id)); err != nil {
		response.FailWithError(c, err)
		return
	}

	if h.index != nil {
		if err := h.index.Delete(c.Request.Context(), search.DocID(uint(id))); err != nil {
			logger.Warn("remove history from index failed", zap.Uint64("id", id), zap.Error(err))
		}
	}
	response.Success(c, h.t(c, "history.deleted"), nil)
}

// handleSearchHistory 历史记录全文检索
func (h *Handlers) handleSearchHistory(c *gin.Context) {
	if h.index == nil {
		response.FailWithError(c, errors.WithCode(errors.CodeNotFound, "search is not enabled"))
		return
	}

	keyword := c.Query("q")
	if keyword == "" {
		response.FailWithError(c, errors.WithCode(errors.CodeBadRequest, "missing query parameter q"))
		return
	}
	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.index.Search(c.Request.Context(), middleware.CurrentUserID(c), keyword, from, size)
	if err != nil {
		response.FailWithError(c, errors.WrapCode(errors.CodeInternal, err, "search history"))
		return
	}
	response.Success(c, "ok", result)
}
