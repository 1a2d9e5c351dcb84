package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

// CreateUser registers a user. A uid is generated when the caller does not bring one from the identity provider.
func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return User{}, fmt.Errorf("%w: invalid email %q", ErrUserDataInvalid, user.Email)
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	if !ValidUid(user.Uid) {
		return User{}, fmt.Errorf("%w: invalid uid %q", ErrUserDataInvalid, user.Uid)
	}
	if user.DisplayName == "" {
		user.DisplayName = strings.SplitN(user.Email, "@", 2)[0]
	}

	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	user.Email = strings.TrimSpace(user.Email)
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return User{}, fmt.Errorf("%w: invalid email %q", ErrUserDataInvalid, user.Email)
	}
	return u.repo.UpdateUser(ctx, userId, user)
}
