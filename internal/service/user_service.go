package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/rs/zerolog"
)

// User management errors.
var (
	ErrPasswordConfirm  = errors.New("password and confirmation differ")
	ErrDuplicateAccount = errors.New("username already registered")
	ErrAccountMissing   = errors.New("account does not exist")
)

// AccountStore is the account repository surface the user service needs.
type AccountStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, a *model.UserAccount) error
	UpdateAccount(ctx context.Context, id int, permissions *string, state *int) error
	SoftDeleteByIDs(ctx context.Context, ids []int) (int, error)
	ListByIDs(ctx context.Context, ids []int) ([]model.UserAccount, error)
	ListPage(ctx context.Context, q *model.UserQuery, limit, offset int) ([]model.UserRow, int, error)
}

// ProfileStore is the profile repository surface the user service needs.
type ProfileStore interface {
	Create(ctx context.Context, info *model.UserInfo) error
	UpdateByAccountID(ctx context.Context, accountID int, u *model.UserUpdateRequest) error
	DeleteByAccountIDs(ctx context.Context, accountIDs []int) error
}

// Digester produces the stored password digest. Satisfied by AuthService.
type Digester interface {
	DigestPassword(password string) string
}

// UserService handles registration and account/profile CRUD.
type UserService struct {
	accounts AccountStore
	profiles ProfileStore
	digest   Digester
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(accounts AccountStore, profiles ProfileStore, digest Digester, log zerolog.Logger) *UserService {
	return &UserService{
		accounts: accounts,
		profiles: profiles,
		digest:   digest,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates an account and its profile. New accounts start with the
// ordinary-user permission.
//
// The duplicate pre-check and the insert are not atomic; when two concurrent
// registrations race past the pre-check, the store's unique constraint
// rejects the loser and that surfaces as ErrDuplicateAccount.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserAccountView, error) {
	if req.Password != req.CheckPassword {
		return nil, ErrPasswordConfirm
	}

	exists, err := s.accounts.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	account := &model.UserAccount{
		Username:       req.Username,
		PasswordDigest: s.digest.DigestPassword(req.Password),
		Permissions:    model.PermissionUser.Code(),
		State:          model.AccountStateActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	info := &model.UserInfo{
		AccountID:    account.ID,
		Name:         req.Name,
		Gender:       req.Gender,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Major:        req.Major,
		Professional: req.Professional,
		StudentType:  req.StudentType,
	}
	if err := s.profiles.Create(ctx, info); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("username", account.Username).Int("account_id", account.ID).Msg("account registered")
	return account.View(), nil
}

// ListPage returns the filtered user listing plus the total row count.
func (s *UserService) ListPage(ctx context.Context, q *model.UserQuery) ([]model.UserRow, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	offset := (q.Page - 1) * q.PerPage

	return s.accounts.ListPage(ctx, q, q.PerPage, offset)
}

// GetByIDs returns the public views of the requested accounts.
func (s *UserService) GetByIDs(ctx context.Context, ids []int) ([]model.UserAccountView, error) {
	accounts, err := s.accounts.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.UserAccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, *accounts[i].View())
	}
	return views, nil
}

// Update modifies account fields and profile fields of one account.
func (s *UserService) Update(ctx context.Context, req *model.UserUpdateRequest) error {
	if err := s.accounts.UpdateAccount(ctx, req.ID, req.Permissions, req.State); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountMissing
		}
		return fmt.Errorf("update account: %w", err)
	}

	if err := s.profiles.UpdateByAccountID(ctx, req.ID, req); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// Delete soft-deletes the given accounts and removes their profiles.
// Returns the number of accounts that were actually deleted.
func (s *UserService) Delete(ctx context.Context, ids []int) (int, error) {
	deleted, err := s.accounts.SoftDeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete accounts: %w", err)
	}

	if err := s.profiles.DeleteByAccountIDs(ctx, ids); err != nil {
		return deleted, fmt.Errorf("delete profiles: %w", err)
	}

	s.log.Info().Ints("account_ids", ids).Int("deleted", deleted).Msg("accounts deleted")
	return deleted, nil
}
