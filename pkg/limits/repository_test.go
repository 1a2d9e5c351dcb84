package limits

import (
	"context"
	"os"
	"testing"

	"github.com/dailyspends/dailyspends/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	ctx := context.Background()
	db := openDb()
	userId := test_utils.InsertUser(t, ctx, db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, NewRepository(db), userId
}

func TestRepositoryImpl_Get(t *testing.T) {
	t.Run("should return zero limits when none stored", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)

		limits, err := repo.Get(ctx, userId)

		require.NoError(t, err)
		assert.Equal(t, Limits{}, limits)
	})
}

func TestRepositoryImpl_Store(t *testing.T) {
	t.Run("should fully replace stored limits", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		require.NoError(t, repo.Store(ctx, userId, Limits{Daily: 10, Monthly: 300, Yearly: 3600}))

		// when
		err := repo.Store(ctx, userId, Limits{Monthly: 250})

		// then
		require.NoError(t, err)
		limits, err := repo.Get(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, Limits{Monthly: 250}, limits)
	})
}
