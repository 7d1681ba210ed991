package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-user-service/internal/model"
	"go-user-service/pkg/apierror"
)

type memStore struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]model.User
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]model.User{}}
}

func (m *memStore) FindByID(_ context.Context, id int64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Username, strings.TrimSpace(username)) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memStore) Create(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u.ID = m.seq
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) Update(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]model.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func newTestUserService() (*UserService, *memStore) {
	store := newMemStore()
	return NewUserService(store, NewPasswordHasher(bcrypt.MinCost)), store
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	svc, store := newTestUserService()

	user, err := svc.Create(context.Background(), model.CreateUserRequest{
		Firstname: "John",
		Fullname:  "John Doe",
		Lastname:  "Doe",
		Username:  "johndoe",
		Password:  "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "active", user.Status)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "secret123")

	stored, err := store.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, NewPasswordHasher(bcrypt.MinCost).Verify("secret123", stored.PasswordHash))
}

func TestUserService_CreateValidatesFields(t *testing.T) {
	svc, _ := newTestUserService()

	cases := []struct {
		name    string
		req     model.CreateUserRequest
		message string
	}{
		{"missing username", model.CreateUserRequest{Fullname: "John Doe", Password: "x"}, "Username is required"},
		{"missing password", model.CreateUserRequest{Fullname: "John Doe", Username: "johndoe"}, "Password is required"},
		{"missing fullname", model.CreateUserRequest{Username: "johndoe", Password: "x"}, "Fullname is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			var apiErr *apierror.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, 400, apiErr.HTTPStatus)
		})
	}
}

func TestUserService_CreateRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService()

	req := model.CreateUserRequest{Fullname: "John Doe", Username: "johndoe", Password: "x"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestUserService_UpdateAppliesNonEmptyFields(t *testing.T) {
	svc, _ := newTestUserService()

	created, err := svc.Create(context.Background(), model.CreateUserRequest{
		Fullname: "John Doe", Username: "johndoe", Password: "old-pass",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateUserRequest{
		Lastname: "Smith",
		Status:   "disabled",
	})
	require.NoError(t, err)

	assert.Equal(t, "Smith", updated.Lastname)
	assert.Equal(t, "disabled", updated.Status)
	assert.Equal(t, "John Doe", updated.Fullname)
	// Password untouched.
	assert.True(t, NewPasswordHasher(bcrypt.MinCost).Verify("old-pass", updated.PasswordHash))
}

func TestUserService_UpdateRehashesNewPassword(t *testing.T) {
	svc, _ := newTestUserService()

	created, err := svc.Create(context.Background(), model.CreateUserRequest{
		Fullname: "John Doe", Username: "johndoe", Password: "old-pass",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateUserRequest{Password: "new-pass"})
	require.NoError(t, err)

	hasher := NewPasswordHasher(bcrypt.MinCost)
	assert.True(t, hasher.Verify("new-pass", updated.PasswordHash))
	assert.False(t, hasher.Verify("old-pass", updated.PasswordHash))
}

func TestUserService_UpdateUnknownUser(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Update(context.Background(), 404, model.UpdateUserRequest{Status: "disabled"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	svc, _ := newTestUserService()

	created, err := svc.Create(context.Background(), model.CreateUserRequest{
		Fullname: "John Doe", Username: "johndoe", Password: "x",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), model.ErrUserNotFound)
}
