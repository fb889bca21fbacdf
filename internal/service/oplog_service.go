package service

import (
	"context"

	"github.com/campuskit/admin-backend/internal/model"
)

// OpLogStore is the op-log repository surface the service needs.
type OpLogStore interface {
	ListPage(ctx context.Context, q *model.OpLogQuery, limit, offset int) ([]model.OpLog, int, error)
}

// OpLogService queries the operation log.
type OpLogService struct {
	logs OpLogStore
}

// NewOpLogService creates a new OpLogService.
func NewOpLogService(logs OpLogStore) *OpLogService {
	return &OpLogService{logs: logs}
}

// ListPage returns filtered operation logs plus the total row count.
func (s *OpLogService) ListPage(ctx context.Context, q *model.OpLogQuery) ([]model.OpLog, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	offset := (q.Page - 1) * q.PerPage

	return s.logs.ListPage(ctx, q, q.PerPage, offset)
}
