package privatbank

import (
	"net/url"
	"time"

	"github.com/sig-0/pbrates/storage/types"
)

// DefaultBaseURL is the PrivatBank archive rates endpoint
const DefaultBaseURL = "https://api.privatbank.ua/p24api/exchange_rates"

// DayURLs returns the request URLs for the given number of days,
// starting at now's calendar day and going backwards (offset 0 is today)
func DayURLs(baseURL string, now time.Time, days int) []string {
	if days <= 0 {
		return []string{}
	}

	var (
		urls  = make([]string, 0, days)
		today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	)

	for offset := 0; offset < days; offset++ {
		day := today.AddDate(0, 0, -offset)

		urls = append(urls, dayURL(baseURL, day))
	}

	return urls
}

// dayURL builds the request URL for a single day
func dayURL(baseURL string, day time.Time) string {
	q := url.Values{}
	q.Set("date", day.Format(types.DateLayout))

	return baseURL + "?" + q.Encode()
}
