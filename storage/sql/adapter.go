package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sig-0/pbrates/storage/types"
)

// DB is the subset of the pgx connection API used by the storage
type DB interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type Storage struct {
	db DB
}

func NewStorage(db DB) *Storage {
	return &Storage{
		db: db,
	}
}

func (s *Storage) SaveDayRates(ctx context.Context, d *types.DayRates) (err error) {
	day, err := types.ParseDate(d.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", d.Date, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // Fine to ignore
		}
	}()

	if _, err = tx.Exec(ctx, saveArchivedDay, day, timeToTimestampz(d.FetchedAt)); err != nil {
		return fmt.Errorf("unable to save archived day: %w", err)
	}

	// Replace the previously archived rates, if any
	if _, err = tx.Exec(ctx, clearDayRates, day); err != nil {
		return fmt.Errorf("unable to clear day rates: %w", err)
	}

	for code, rate := range d.Rates {
		if _, err = tx.Exec(ctx, saveDayRate, day, code.String(), rate.Sale, rate.Purchase); err != nil {
			return fmt.Errorf("unable to save %s rate: %w", code, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("unable to commit day rates: %w", err)
	}

	return nil
}

func (s *Storage) DayRates(ctx context.Context, date string) (*types.DayRates, error) {
	day, err := types.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var fetchedAt pgtype.Timestamptz

	if err = s.db.QueryRow(ctx, archivedDay, day).Scan(&fetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // valid case
		}

		return nil, fmt.Errorf("unable to fetch archived day: %w", err)
	}

	rows, err := s.db.Query(ctx, dayRates, day)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch day rates: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[rateRow])
	if err != nil {
		return nil, fmt.Errorf("unable to scan day rates: %w", err)
	}

	rates := make(types.Rates, len(records))
	for _, r := range records {
		rates[types.Currency(r.Currency)] = types.CurrencyRate{
			Sale:     r.Sale,
			Purchase: r.Purchase,
		}
	}

	return &types.DayRates{
		FetchedAt: timestampzToTime(fetchedAt),
		Rates:     rates,
		Date:      day.Format(types.DateLayout),
	}, nil
}

func (s *Storage) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, listDates)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch archived days: %w", err)
	}

	days, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("unable to scan archived days: %w", err)
	}

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(types.DateLayout))
	}

	return out, nil
}

// rateRow is a single day_rates row
type rateRow struct {
	Currency string
	Sale     string
	Purchase string
}

// timeToTimestampz converts the time value to postgres timestamp
func timeToTimestampz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t.UTC(),
		Valid: true,
	}
}

// timestampzToTime converts the postgres timestamp value to time
func timestampzToTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}

	return ts.Time
}
