package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertUser creates a users row so rows with a user_id foreign key can be stored.
func InsertUser(t *testing.T, ctx context.Context, db *pgxpool.Pool) int {
	t.Helper()
	uid := uuid.NewString()
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO users (uid, email, display_name) VALUES ($1, $2, $3) RETURNING id`,
		uid, uid+"@example.com", "Test User",
	).Scan(&id)
	require.NoError(t, err)
	return id
}
