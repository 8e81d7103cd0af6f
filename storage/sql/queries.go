package sql

const (
	saveArchivedDay = `
INSERT INTO archived_days (as_of, fetched_at)
VALUES ($1, $2)
ON CONFLICT (as_of) DO UPDATE SET fetched_at = EXCLUDED.fetched_at`

	clearDayRates = `DELETE FROM day_rates WHERE as_of = $1`

	saveDayRate = `
INSERT INTO day_rates (as_of, currency, sale, purchase)
VALUES ($1, $2, $3, $4)`

	archivedDay = `SELECT fetched_at FROM archived_days WHERE as_of = $1`

	dayRates = `
SELECT currency, sale, purchase
FROM day_rates
WHERE as_of = $1
ORDER BY currency`

	listDates = `SELECT as_of FROM archived_days ORDER BY as_of DESC`
)
