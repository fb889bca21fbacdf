package model

import "time"

// AccountState values for UserAccount.State.
const (
	AccountStateActive   = 0
	AccountStateDisabled = 1
)

// UserAccount is the authoritative account row, password digest included.
// Permissions is a comma-separated list of permission codes. It is stored
// as-is: not deduplicated and not validated against the closed set, so an
// unknown code simply never matches during authorization.
type UserAccount struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"-"`
	Permissions    string    `json:"permissions"`
	State          int       `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// View returns the public profile of the account.
func (a *UserAccount) View() *UserAccountView {
	return &UserAccountView{
		ID:          a.ID,
		Username:    a.Username,
		Permissions: a.Permissions,
		State:       a.State,
		CreatedAt:   a.CreatedAt,
	}
}

// UserAccountView is the public profile: what login returns, what the
// session stores, and what list endpoints expose. It never carries the
// password digest.
type UserAccountView struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Permissions string    `json:"permissions"`
	State       int       `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserInfo is the profile row attached to an account.
type UserInfo struct {
	ID           int        `json:"id"`
	AccountID    int        `json:"account_id"`
	Name         string     `json:"name"`
	Gender       *string    `json:"gender,omitempty"`
	Mobile       *string    `json:"mobile,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Major        *int       `json:"major,omitempty"`
	Professional *int       `json:"professional,omitempty"`
	StudentType  *int       `json:"student_type,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserRow is one record of the paged user listing: account fields joined
// with the profile.
type UserRow struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Permissions  string     `json:"permissions"`
	State        int        `json:"state"`
	Name         string     `json:"name"`
	Gender       *string    `json:"gender,omitempty"`
	Mobile       *string    `json:"mobile,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Major        *int       `json:"major,omitempty"`
	Professional *int       `json:"professional,omitempty"`
	StudentType  *int       `json:"student_type,omitempty"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username      string  `json:"username" binding:"required,min=3,max=64"`
	Password      string  `json:"password" binding:"required,min=6,max=128"`
	CheckPassword string  `json:"check_password" binding:"required"`
	Name          string  `json:"name" binding:"required,max=64"`
	Gender        *string `json:"gender"`
	Mobile        *string `json:"mobile"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Major         *int    `json:"major"`
	Professional  *int    `json:"professional"`
	StudentType   *int    `json:"student_type"`
}

// UserQuery carries the optional filters of the paged user listing.
type UserQuery struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	Permissions  string  `json:"permissions"`
	State        *int    `json:"state"`
	Gender       *string `json:"gender"`
	Mobile       string  `json:"mobile"`
	Email        string  `json:"email"`
	Major        *int    `json:"major"`
	Professional *int    `json:"professional"`
	StudentType  *int    `json:"student_type"`
}

// UserUpdateRequest updates account fields and profile fields of one account.
type UserUpdateRequest struct {
	ID           int     `json:"id" binding:"required"`
	Permissions  *string `json:"permissions"`
	State        *int    `json:"state"`
	Name         *string `json:"name"`
	Gender       *string `json:"gender"`
	Mobile       *string `json:"mobile"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Major        *int    `json:"major"`
	Professional *int    `json:"professional"`
	StudentType  *int    `json:"student_type"`
}
