package repository

import (
	"context"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserInfoRepository handles profile data access.
type UserInfoRepository struct {
	pool *pgxpool.Pool
}

// NewUserInfoRepository creates a new UserInfoRepository.
func NewUserInfoRepository(pool *pgxpool.Pool) *UserInfoRepository {
	return &UserInfoRepository{pool: pool}
}

// Create inserts a profile row for an account.
func (r *UserInfoRepository) Create(ctx context.Context, info *model.UserInfo) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO user_infos (account_id, name, gender, mobile, email, birthday, major, professional, student_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		info.AccountID, info.Name, info.Gender, info.Mobile, info.Email,
		info.Birthday, info.Major, info.Professional, info.StudentType,
	).Scan(&info.ID, &info.CreatedAt)
}

// UpdateByAccountID modifies the profile of one account. Nil fields are left
// untouched.
func (r *UserInfoRepository) UpdateByAccountID(ctx context.Context, accountID int, u *model.UserUpdateRequest) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_infos
		 SET name = COALESCE($2, name),
		     gender = COALESCE($3, gender),
		     mobile = COALESCE($4, mobile),
		     email = COALESCE($5, email),
		     major = COALESCE($6, major),
		     professional = COALESCE($7, professional),
		     student_type = COALESCE($8, student_type)
		 WHERE account_id = $1`,
		accountID, u.Name, u.Gender, u.Mobile, u.Email, u.Major, u.Professional, u.StudentType,
	)
	return err
}

// DeleteByAccountIDs removes the profiles of the given accounts.
func (r *UserInfoRepository) DeleteByAccountIDs(ctx context.Context, accountIDs []int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_infos WHERE account_id = ANY($1)`, accountIDs,
	)
	return err
}
