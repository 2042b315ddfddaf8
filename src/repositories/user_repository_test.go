package repositories_test

import (
	"context"
	"errors"
	"testing"

	"advisor/src/database/testdb"
	"advisor/src/models"
	"advisor/src/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testdb.SetupTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	createUser(t, repo, 87216, "advisor@example.com")

	t.Run("GetByARN", func(t *testing.T) {
		user, err := repo.GetByARN(ctx, 87216)
		require.NoError(t, err)
		assert.Equal(t, "advisor@example.com", user.Email)
		assert.True(t, user.IsActive)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "advisor@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(87216), user.ARNNumber)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := repo.GetByARN(ctx, 1)
		assert.True(t, errors.Is(err, repositories.ErrUserNotFound))
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, errors.Is(err, repositories.ErrUserNotFound))
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{ARNNumber: 1111, Email: "advisor@example.com", Password: "hash"})
		assert.True(t, errors.Is(err, repositories.ErrUserAlreadyExists))
	})

	t.Run("List", func(t *testing.T) {
		createUser(t, repo, 12, "second@example.com")
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(12), users[0].ARNNumber)
	})
}
