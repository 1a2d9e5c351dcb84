package limits

import (
	"context"
	"errors"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Get(ctx context.Context, userId int) (Limits, error)
	Store(ctx context.Context, userId int, limits Limits) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Get returns zero limits when the user never stored any.
func (r *RepositoryImpl) Get(ctx context.Context, userId int) (Limits, error) {
	query := `SELECT daily_limit, monthly_limit, yearly_limit FROM user_limits WHERE user_id = $1`

	var limits Limits
	err := r.db.QueryRow(ctx, query, userId).Scan(&limits.Daily, &limits.Monthly, &limits.Yearly)
	if errors.Is(err, pgx.ErrNoRows) {
		return Limits{}, nil
	}
	if err != nil {
		log.Errorf("failed to get limits of user %d: %v", userId, err)
		return Limits{}, database.Unavailable("get limits", err)
	}
	return limits, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, limits Limits) error {
	query := `INSERT INTO user_limits (user_id, daily_limit, monthly_limit, yearly_limit, updated)
			  VALUES ($1, $2, $3, $4, now())
			  ON CONFLICT (user_id)
			  DO UPDATE SET daily_limit = EXCLUDED.daily_limit,
							monthly_limit = EXCLUDED.monthly_limit,
							yearly_limit = EXCLUDED.yearly_limit,
							updated = EXCLUDED.updated`

	_, err := r.db.Exec(ctx, query, userId, limits.Daily, limits.Monthly, limits.Yearly)
	if err != nil {
		log.Errorf("failed to store limits of user %d: %v", userId, err)
		return database.Unavailable("store limits", err)
	}
	return nil
}
