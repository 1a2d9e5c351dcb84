package expense

import (
	"context"
	"sort"
	"sync"
)

type dayKey struct {
	userId int
	month  Month
	day    int
}

type RepositoryStub struct {
	mu      sync.Mutex
	records map[dayKey]Record
	// Err is returned by every call when set.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{records: map[dayKey]Record{}}
}

func (r *RepositoryStub) GetMonth(ctx context.Context, userId int, month Month) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	records := make([]Record, 0)
	for key, record := range r.records {
		if key.userId == userId && key.month == month {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Day < records[j].Day })
	return records, nil
}

func (r *RepositoryStub) GetDay(ctx context.Context, userId int, month Month, day int) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return Record{}, r.Err
	}
	record, ok := r.records[dayKey{userId, month, day}]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return record, nil
}

func (r *RepositoryStub) StoreDay(ctx context.Context, userId int, month Month, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	amounts := make(map[Category]float64, len(record.Amounts))
	for category, amount := range record.Amounts {
		amounts[category] = amount
	}
	record.Amounts = amounts
	r.records[dayKey{userId, month, record.Day}] = record
	return nil
}

func (r *RepositoryStub) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = map[dayKey]Record{}
	r.Err = nil
}
