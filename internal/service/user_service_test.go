package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/rs/zerolog"
)

type fakeAccountStore struct {
	existing    map[string]bool
	createErr   error
	created     []*model.UserAccount
	nextID      int
	updateErr   error
	deleted     []int
	lastLimit   int
	lastOffset  int
	listPageOut []model.UserRow
}

func (f *fakeAccountStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return f.existing[username], nil
}

func (f *fakeAccountStore) Create(_ context.Context, a *model.UserAccount) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAccountStore) UpdateAccount(_ context.Context, _ int, _ *string, _ *int) error {
	return f.updateErr
}

func (f *fakeAccountStore) SoftDeleteByIDs(_ context.Context, ids []int) (int, error) {
	f.deleted = append(f.deleted, ids...)
	return len(ids), nil
}

func (f *fakeAccountStore) ListByIDs(_ context.Context, _ []int) ([]model.UserAccount, error) {
	return nil, nil
}

func (f *fakeAccountStore) ListPage(_ context.Context, _ *model.UserQuery, limit, offset int) ([]model.UserRow, int, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.listPageOut, len(f.listPageOut), nil
}

type fakeProfileStore struct {
	created []*model.UserInfo
	updated []int
	removed []int
}

func (f *fakeProfileStore) Create(_ context.Context, info *model.UserInfo) error {
	f.created = append(f.created, info)
	return nil
}

func (f *fakeProfileStore) UpdateByAccountID(_ context.Context, accountID int, _ *model.UserUpdateRequest) error {
	f.updated = append(f.updated, accountID)
	return nil
}

func (f *fakeProfileStore) DeleteByAccountIDs(_ context.Context, accountIDs []int) error {
	f.removed = append(f.removed, accountIDs...)
	return nil
}

type fakeDigester struct{}

func (fakeDigester) DigestPassword(password string) string { return "digest:" + password }

func newTestUserService() (*UserService, *fakeAccountStore, *fakeProfileStore) {
	accounts := &fakeAccountStore{existing: map[string]bool{}}
	profiles := &fakeProfileStore{}
	return NewUserService(accounts, profiles, fakeDigester{}, zerolog.Nop()), accounts, profiles
}

func validRegister() *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:      "bob",
		Password:      "secret123",
		CheckPassword: "secret123",
		Name:          "Bob",
	}
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	svc, accounts, profiles := newTestUserService()

	view, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if view.ID != 1 || view.Username != "bob" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Permissions != model.PermissionUser.Code() {
		t.Fatalf("new account permissions = %q, want %q", view.Permissions, model.PermissionUser.Code())
	}

	if len(accounts.created) != 1 {
		t.Fatalf("created %d accounts, want 1", len(accounts.created))
	}
	if got := accounts.created[0].PasswordDigest; got != "digest:secret123" {
		t.Fatalf("stored digest = %q", got)
	}

	if len(profiles.created) != 1 || profiles.created[0].AccountID != 1 {
		t.Fatalf("unexpected profiles: %+v", profiles.created)
	}
	if profiles.created[0].Name != "Bob" {
		t.Fatalf("profile name = %q", profiles.created[0].Name)
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc, accounts, _ := newTestUserService()

	req := validRegister()
	req.CheckPassword = "different"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrPasswordConfirm) {
		t.Fatalf("expected ErrPasswordConfirm, got %v", err)
	}
	if len(accounts.created) != 0 {
		t.Fatal("account must not be created on confirmation mismatch")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, accounts, _ := newTestUserService()
	accounts.existing["bob"] = true

	_, err := svc.Register(context.Background(), validRegister())
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestRegisterMapsUniqueViolationToDuplicate(t *testing.T) {
	// Two registrations racing past the pre-check: the insert itself fails
	// on the unique constraint and must surface as the same duplicate error.
	svc, accounts, _ := newTestUserService()
	accounts.createErr = repository.ErrDuplicateUsername

	_, err := svc.Register(context.Background(), validRegister())
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestListPageNormalizesPaging(t *testing.T) {
	svc, accounts, _ := newTestUserService()

	_, _, err := svc.ListPage(context.Background(), &model.UserQuery{Page: 0, PerPage: 0})
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if accounts.lastLimit != 10 || accounts.lastOffset != 0 {
		t.Fatalf("limit/offset = %d/%d, want 10/0", accounts.lastLimit, accounts.lastOffset)
	}

	_, _, err = svc.ListPage(context.Background(), &model.UserQuery{Page: 3, PerPage: 20})
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if accounts.lastLimit != 20 || accounts.lastOffset != 40 {
		t.Fatalf("limit/offset = %d/%d, want 20/40", accounts.lastLimit, accounts.lastOffset)
	}
}

func TestUpdateMissingAccount(t *testing.T) {
	svc, accounts, profiles := newTestUserService()
	accounts.updateErr = repository.ErrAccountNotFound

	err := svc.Update(context.Background(), &model.UserUpdateRequest{ID: 99})
	if !errors.Is(err, ErrAccountMissing) {
		t.Fatalf("expected ErrAccountMissing, got %v", err)
	}
	if len(profiles.updated) != 0 {
		t.Fatal("profile must not be touched when the account is missing")
	}
}

func TestDeleteRemovesAccountsAndProfiles(t *testing.T) {
	svc, accounts, profiles := newTestUserService()

	n, err := svc.Delete(context.Background(), []int{4, 7})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted = %d, want 2", n)
	}
	if len(accounts.deleted) != 2 || len(profiles.removed) != 2 {
		t.Fatalf("deleted accounts %v, profiles %v", accounts.deleted, profiles.removed)
	}
}
