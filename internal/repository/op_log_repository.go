package repository

import (
	"context"
	"strconv"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpLogRepository handles operation log data access.
type OpLogRepository struct {
	pool *pgxpool.Pool
}

// NewOpLogRepository creates a new OpLogRepository.
func NewOpLogRepository(pool *pgxpool.Pool) *OpLogRepository {
	return &OpLogRepository{pool: pool}
}

// Insert writes one operation log record.
func (r *OpLogRepository) Insert(ctx context.Context, l *model.OpLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO op_logs (level, business_type, request_method, oper_name, oper_url, oper_ip, oper_time, error_detail)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.Level, l.BusinessType, l.RequestMethod, l.OperName, l.OperURL, l.OperIP, l.OperTime, l.ErrorDetail,
	)
	return err
}

// ListPage retrieves operation logs with the query's filters applied, newest
// first.
func (r *OpLogRepository) ListPage(ctx context.Context, q *model.OpLogQuery, limit, offset int) ([]model.OpLog, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		where += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}

	if q.Level != nil {
		addFilter(`level = `, *q.Level)
	}
	if q.BusinessType != nil {
		addFilter(`business_type = `, *q.BusinessType)
	}
	if q.RequestMethod != "" {
		addFilter(`request_method = `, q.RequestMethod)
	}
	if q.OperName != "" {
		addFilter(`oper_name = `, q.OperName)
	}
	if q.OperURL != "" {
		addFilter(`oper_url LIKE `, "%"+q.OperURL+"%")
	}
	if q.OperIP != "" {
		addFilter(`oper_ip = `, q.OperIP)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM op_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, level, business_type, request_method, oper_name, oper_url, oper_ip, oper_time, error_detail
		 FROM op_logs` + where +
		` ORDER BY oper_time DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []model.OpLog
	for rows.Next() {
		var l model.OpLog
		if err := rows.Scan(&l.ID, &l.Level, &l.BusinessType, &l.RequestMethod,
			&l.OperName, &l.OperURL, &l.OperIP, &l.OperTime, &l.ErrorDetail); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
