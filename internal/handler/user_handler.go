package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/response"
	"github.com/campuskit/admin-backend/internal/service"
	"github.com/campuskit/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// UserHandler handles registration and account management endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// POST /api/v1/user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordConfirm):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"check_password": "password and confirmation must match"})
		case errors.Is(err, service.ErrDuplicateAccount):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateAccount)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, account)
}

// PageList godoc
// POST /api/v1/user/page-list
// Paged, filtered listing of accounts joined with profiles.
func (h *UserHandler) PageList(c *gin.Context) {
	var q model.UserQuery
	if fields := validator.Bind(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	users, total, err := h.userService.ListPage(c.Request.Context(), &q)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, users, &response.Pagination{
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	})
}

// GetAccounts godoc
// GET /api/v1/user/accounts?ids=1,2,3
// Returns public views of the requested accounts.
func (h *UserHandler) GetAccounts(c *gin.Context) {
	ids, ok := parseIDs(c, c.Query("ids"))
	if !ok {
		return
	}

	views, err := h.userService.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// Update godoc
// POST /api/v1/user/update
// Updates account fields and profile fields of one account.
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UserUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.userService.Update(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrAccountMissing) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// Delete godoc
// DELETE /api/v1/user/delete?ids=1,2,3
// Soft-deletes accounts and removes their profiles.
func (h *UserHandler) Delete(c *gin.Context) {
	ids, ok := parseIDs(c, c.Query("ids"))
	if !ok {
		return
	}

	deleted, err := h.userService.Delete(c.Request.Context(), ids)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// parseIDs parses a comma-separated ID list. It writes the error response
// itself and returns ok=false on bad input.
func parseIDs(c *gin.Context, raw string) ([]int, bool) {
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrMissingParams)
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
