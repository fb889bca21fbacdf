package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAccountNotFound is returned when no matching account row exists.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateUsername is returned when an insert hits the unique username
// constraint. Two concurrent registrations can both pass the pre-check; the
// loser surfaces here, not as a crash.
var ErrDuplicateUsername = errors.New("account with this username already exists")

// UserAccountRepository handles account data access.
type UserAccountRepository struct {
	pool *pgxpool.Pool
}

// NewUserAccountRepository creates a new UserAccountRepository.
func NewUserAccountRepository(pool *pgxpool.Pool) *UserAccountRepository {
	return &UserAccountRepository{pool: pool}
}

const accountColumns = `id, username, password_digest, permissions, state, created_at, updated_at`

// GetByID retrieves a live (non-deleted) account by ID.
func (r *UserAccountRepository) GetByID(ctx context.Context, id int) (*model.UserAccount, error) {
	a := &model.UserAccount{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM user_accounts WHERE id = $1 AND deleted = FALSE`, id,
	).Scan(&a.ID, &a.Username, &a.PasswordDigest, &a.Permissions, &a.State, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// GetByUsername retrieves an account by its unique username (exact match).
func (r *UserAccountRepository) GetByUsername(ctx context.Context, username string) (*model.UserAccount, error) {
	a := &model.UserAccount{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM user_accounts WHERE username = $1 AND deleted = FALSE`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordDigest, &a.Permissions, &a.State, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// ExistsByUsername reports whether a live account with the username exists.
func (r *UserAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_accounts WHERE username = $1 AND deleted = FALSE)`, username,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new account.
func (r *UserAccountRepository) Create(ctx context.Context, a *model.UserAccount) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_accounts (username, password_digest, permissions, state)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Username, a.PasswordDigest, a.Permissions, a.State,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// UpdateAccount modifies the mutable account fields of one row. Nil fields
// are left untouched.
func (r *UserAccountRepository) UpdateAccount(ctx context.Context, id int, permissions *string, state *int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_accounts
		 SET permissions = COALESCE($2, permissions),
		     state = COALESCE($3, state),
		     updated_at = NOW()
		 WHERE id = $1 AND deleted = FALSE`,
		id, permissions, state,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SoftDeleteByIDs marks the given accounts as deleted and returns how many
// rows changed.
func (r *UserAccountRepository) SoftDeleteByIDs(ctx context.Context, ids []int) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_accounts SET deleted = TRUE, updated_at = NOW()
		 WHERE id = ANY($1) AND deleted = FALSE`, ids,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ListByIDs retrieves live accounts for the given IDs.
func (r *UserAccountRepository) ListByIDs(ctx context.Context, ids []int) ([]model.UserAccount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM user_accounts WHERE id = ANY($1) AND deleted = FALSE ORDER BY id`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.UserAccount
	for rows.Next() {
		var a model.UserAccount
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordDigest, &a.Permissions, &a.State, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListPage retrieves the joined account/profile listing with the query's
// filters applied, newest accounts first.
func (r *UserAccountRepository) ListPage(ctx context.Context, q *model.UserQuery, limit, offset int) ([]model.UserRow, int, error) {
	where := ` WHERE a.deleted = FALSE`
	var args []interface{}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		where += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}

	if q.Username != "" {
		addFilter(`a.username = `, q.Username)
	}
	if q.Name != "" {
		addFilter(`i.name LIKE `, "%"+q.Name+"%")
	}
	if q.Permissions != "" {
		addFilter(`a.permissions LIKE `, "%"+q.Permissions+"%")
	}
	if q.State != nil {
		addFilter(`a.state = `, *q.State)
	}
	if q.Gender != nil {
		addFilter(`i.gender = `, *q.Gender)
	}
	if q.Mobile != "" {
		addFilter(`i.mobile = `, q.Mobile)
	}
	if q.Email != "" {
		addFilter(`i.email = `, q.Email)
	}
	if q.Major != nil {
		addFilter(`i.major = `, *q.Major)
	}
	if q.Professional != nil {
		addFilter(`i.professional = `, *q.Professional)
	}
	if q.StudentType != nil {
		addFilter(`i.student_type = `, *q.StudentType)
	}

	const from = ` FROM user_accounts a JOIN user_infos i ON i.account_id = a.id`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT a.id, a.username, a.permissions, a.state,
		 i.name, i.gender, i.mobile, i.email, i.birthday, i.major, i.professional, i.student_type` +
		from + where +
		` ORDER BY a.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.UserRow
	for rows.Next() {
		var u model.UserRow
		if err := rows.Scan(&u.ID, &u.Username, &u.Permissions, &u.State,
			&u.Name, &u.Gender, &u.Mobile, &u.Email, &u.Birthday, &u.Major, &u.Professional, &u.StudentType); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
