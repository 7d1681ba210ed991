package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-user-service/internal/model"
	"go-user-service/pkg/apierror"
)

const defaultStatus = "active"

// UserStore is the credential store surface used by the CRUD flows.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
}

type UserService struct {
	store  UserStore
	hasher *PasswordHasher
}

func NewUserService(store UserStore, hasher *PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Fullname = strings.TrimSpace(req.Fullname)

	if req.Username == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "Username is required", http.StatusBadRequest)
	}
	if req.Password == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "Password is required", http.StatusBadRequest)
	}
	if req.Fullname == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "Fullname is required", http.StatusBadRequest)
	}

	exists, err := s.store.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = defaultStatus
	}

	now := time.Now().UTC()
	user := model.User{
		Firstname:    strings.TrimSpace(req.Firstname),
		Fullname:     req.Fullname,
		Lastname:     strings.TrimSpace(req.Lastname),
		Username:     req.Username,
		PasswordHash: hash,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.store.Create(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// Update applies the non-empty fields of req. A new password is hashed before
// it touches the store.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if v := strings.TrimSpace(req.Firstname); v != "" {
		user.Firstname = v
	}
	if v := strings.TrimSpace(req.Fullname); v != "" {
		user.Fullname = v
	}
	if v := strings.TrimSpace(req.Lastname); v != "" {
		user.Lastname = v
	}
	if v := strings.TrimSpace(req.Status); v != "" {
		user.Status = v
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
