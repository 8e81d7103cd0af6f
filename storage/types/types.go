package types

import (
	"encoding/json"
	"time"
)

// DateLayout is the day format used by the PrivatBank API (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// NotFoundSentinel is the rendered value of a day without published rates
const NotFoundSentinel = "Not found"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func (c Currency) String() string {
	return string(c)
}

// Outcome is the tag of a single day fetch result
type Outcome int

const (
	// OutcomeFailed means the request or the response was unusable
	OutcomeFailed Outcome = iota

	// OutcomeNotFound means the API has no data published for the day
	OutcomeNotFound

	// OutcomeFound means the day's rates were fetched
	OutcomeFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// CurrencyRate holds the quoted sale and purchase rates, verbatim
type CurrencyRate struct {
	Purchase string `json:"purchase"`
	Sale     string `json:"sale"`
}

// Rates maps a currency code to its quoted rates
type Rates map[Currency]CurrencyRate

// DayRates is the rates snapshot for a single day
type DayRates struct {
	FetchedAt time.Time `json:"fetched_at"`
	Rates     Rates     `json:"rates"`
	Date      string    `json:"date"`
}

// DayResult is the outcome of fetching a single day
type DayResult struct {
	Rates   Rates
	Date    string
	Outcome Outcome
}

// Found creates a result for a fetched day
func Found(date string, rates Rates) *DayResult {
	if rates == nil {
		rates = Rates{}
	}

	return &DayResult{
		Outcome: OutcomeFound,
		Date:    date,
		Rates:   rates,
	}
}

// NotFound creates a result for a day without published data
func NotFound() *DayResult {
	return &DayResult{Outcome: OutcomeNotFound}
}

// Failed creates a result for a day that could not be fetched
func Failed() *DayResult {
	return &DayResult{Outcome: OutcomeFailed}
}

// MarshalJSON renders the result as {"<date>": rates}, the
// not-found sentinel string, or null for failed days
func (r *DayResult) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	switch r.Outcome {
	case OutcomeFound:
		return json.Marshal(map[string]Rates{r.Date: r.Rates})
	case OutcomeNotFound:
		return json.Marshal(NotFoundSentinel)
	default:
		return []byte("null"), nil
	}
}

// RenderAggregate renders the ordered day results as indented JSON
func RenderAggregate(results []*DayResult) ([]byte, error) {
	if results == nil {
		results = []*DayResult{}
	}

	return json.MarshalIndent(results, "", "    ")
}

// ParseDate parses a DD.MM.YYYY day into a UTC midnight time
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}
