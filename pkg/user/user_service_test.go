package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*UserServiceImpl, *StubUserRepository) {
	repo := NewStubUserRepository()
	t.Cleanup(repo.Cleanup)
	return NewUserService(repo), repo
}

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("should generate uid and display name when missing", func(t *testing.T) {
		// given
		service, _ := setupService(t)

		// when
		created, err := service.CreateUser(context.Background(), User{Email: " jane@example.com "})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, "jane@example.com", created.Email)
		assert.Equal(t, "jane", created.DisplayName)
		assert.Len(t, created.Uid, 36)
	})

	t.Run("should keep provided uid", func(t *testing.T) {
		service, _ := setupService(t)

		created, err := service.CreateUser(context.Background(), User{Uid: "firebase-uid", Email: "a@b.com", DisplayName: "A"})

		require.NoError(t, err)
		assert.Equal(t, "firebase-uid", created.Uid)
		assert.Equal(t, "A", created.DisplayName)
	})

	t.Run("should reject uid that is not a single path segment", func(t *testing.T) {
		for _, uid := range []string{"../../escaped", "alice/x", "a b", "uid."} {
			service, repo := setupService(t)

			_, err := service.CreateUser(context.Background(), User{Uid: uid, Email: "a@b.com"})

			assert.ErrorIs(t, err, ErrUserDataInvalid, uid)
			_, err = repo.GetUserByUid(context.Background(), uid)
			assert.ErrorIs(t, err, ErrUserNotFound, uid)
		}
	})

	t.Run("should reject invalid email", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.CreateUser(context.Background(), User{Email: "not-an-email"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		service, _ := setupService(t)
		_, err := service.CreateUser(context.Background(), User{Email: "a@b.com"})
		require.NoError(t, err)

		_, err = service.CreateUser(context.Background(), User{Email: "a@b.com"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestUserServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should fail without user in context", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.GetCurrentUser(context.Background())

		assert.ErrorIs(t, err, ErrNoUser)
	})

	t.Run("should return the stored user", func(t *testing.T) {
		service, _ := setupService(t)
		created, err := service.CreateUser(context.Background(), User{Email: "a@b.com"})
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		current, err := service.GetCurrentUser(ctx)

		require.NoError(t, err)
		assert.Equal(t, created, current)
	})
}

func TestUserServiceImpl_UpdateUser(t *testing.T) {
	t.Run("should update email and display name of current user", func(t *testing.T) {
		// given
		service, _ := setupService(t)
		created, err := service.CreateUser(context.Background(), User{Email: "a@b.com"})
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		updated, err := service.UpdateUser(ctx, User{Email: "c@d.com", DisplayName: "Carl"})

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, updated.Id)
		assert.Equal(t, created.Uid, updated.Uid)
		assert.Equal(t, "c@d.com", updated.Email)
		assert.Equal(t, "Carl", updated.DisplayName)
	})
}
