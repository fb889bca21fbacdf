package handler

import (
	"net/http"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/response"
	"github.com/campuskit/admin-backend/internal/service"
	"github.com/campuskit/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// OpLogHandler exposes the operation log to operators.
type OpLogHandler struct {
	opLogService *service.OpLogService
}

// NewOpLogHandler creates a new OpLogHandler.
func NewOpLogHandler(opLogService *service.OpLogService) *OpLogHandler {
	return &OpLogHandler{opLogService: opLogService}
}

// PageList godoc
// POST /api/v1/logs/page-list
func (h *OpLogHandler) PageList(c *gin.Context) {
	var q model.OpLogQuery
	if fields := validator.Bind(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	logs, total, err := h.opLogService.ListPage(c.Request.Context(), &q)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, logs, &response.Pagination{
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	})
}
