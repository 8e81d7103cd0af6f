// Package privatbank provides the PrivatBank archive exchange rate provider.
//
// # API
//
// URL: https://api.privatbank.ua/p24api/exchange_rates?date=DD.MM.YYYY
//
// Each request returns the rates published for a single calendar day:
//
//	{
//	  "date": "10.01.2024",
//	  "bank": "PB",
//	  "exchangeRate": [
//	    {"currency": "EUR", "saleRate": "42.3", "purchaseRate": "41.4", ...},
//	    {"currency": "USD", "saleRate": "38.2", "purchaseRate": "37.6", ...}
//	  ]
//	}
//
// Only the EUR and USD sale / purchase rates are extracted. The rate values
// are passed through as the strings the API returns.
//
// # Outcomes
//
// A day fetch never returns an error. It yields one of:
//   - Found: the day's date and the extracted rates
//   - NotFound: HTTP 200 with an empty body (nothing published for the day)
//   - Failed: a non-200 status, a transport error or an undecodable body
//
// Failed fetches are passed to the configured Reporter, which logs them by
// default.
package privatbank
