package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repository stores one document per (user, month, day).
type Repository interface {
	GetMonth(ctx context.Context, userId int, month Month) ([]Record, error)
	GetDay(ctx context.Context, userId int, month Month, day int) (Record, error)
	StoreDay(ctx context.Context, userId int, month Month, record Record) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// GetMonth returns the existing day records of the month ordered by day. Days without a
// document are absent from the result.
func (r *RepositoryImpl) GetMonth(ctx context.Context, userId int, month Month) ([]Record, error) {
	query := `SELECT day, amounts, notes, receipt_ref
			  FROM expense_day
			  WHERE user_id = $1 AND year = $2 AND month = $3
			  ORDER BY day`

	rows, err := r.db.Query(ctx, query, userId, month.Year, int(month.Month))
	if err != nil {
		log.Errorf("failed to query expenses for %s: %v", month, err)
		return nil, database.Unavailable("get month", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("failed to read expenses for %s: %v", month, err)
		return nil, database.Unavailable("get month", err)
	}
	return records, nil
}

func (r *RepositoryImpl) GetDay(ctx context.Context, userId int, month Month, day int) (Record, error) {
	query := `SELECT day, amounts, notes, receipt_ref
			  FROM expense_day
			  WHERE user_id = $1 AND year = $2 AND month = $3 AND day = $4`

	record, err := scanRecord(r.db.QueryRow(ctx, query, userId, month.Year, int(month.Month), day))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

// StoreDay replaces the whole document of the day. Categories missing from record are gone afterwards.
func (r *RepositoryImpl) StoreDay(ctx context.Context, userId int, month Month, record Record) error {
	amounts := record.Amounts
	if amounts == nil {
		amounts = map[Category]float64{}
	}
	amountsJson, err := json.Marshal(amounts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	var receiptRef *string
	if record.ReceiptRef != "" {
		receiptRef = &record.ReceiptRef
	}

	query := `INSERT INTO expense_day (user_id, year, month, day, amounts, notes, receipt_ref, updated)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			  ON CONFLICT (user_id, year, month, day)
			  DO UPDATE SET amounts = EXCLUDED.amounts,
							notes = EXCLUDED.notes,
							receipt_ref = EXCLUDED.receipt_ref,
							updated = EXCLUDED.updated`

	_, err = r.db.Exec(ctx, query, userId, month.Year, int(month.Month), record.Day, amountsJson, record.Notes, receiptRef)
	if err != nil {
		log.Errorf("failed to store expenses for %s day %d: %v", month, record.Day, err)
		return database.Unavailable("store day", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	var amountsJson []byte
	var receiptRef *string
	err := row.Scan(&record.Day, &amountsJson, &record.Notes, &receiptRef)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, err
	}
	if err != nil {
		log.Errorf("failed to scan expense record: %v", err)
		return Record{}, database.Unavailable("scan record", err)
	}
	if err := json.Unmarshal(amountsJson, &record.Amounts); err != nil {
		log.Errorf("stored amounts of day %d are not valid json: %v", record.Day, err)
		return Record{}, fmt.Errorf("%w: day %d: %v", ErrInvalidRecord, record.Day, err)
	}
	if receiptRef != nil {
		record.ReceiptRef = *receiptRef
	}
	return record, nil
}
