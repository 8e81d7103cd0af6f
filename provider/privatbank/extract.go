package privatbank

import "github.com/sig-0/pbrates/storage/types"

// RateRecord is a single currency entry of the API response
type RateRecord struct {
	Currency     string `json:"currency"`
	SaleRate     string `json:"saleRate"`
	PurchaseRate string `json:"purchaseRate"`
}

// dayResponse is the API response for a single day
type dayResponse struct {
	Date         string       `json:"date"`
	ExchangeRate []RateRecord `json:"exchangeRate"`
}

// ExtractRate looks up the first record for the given currency.
// The second return value is false when no record matches
func ExtractRate(code types.Currency, records []RateRecord) (types.Rates, bool) {
	for _, record := range records {
		if record.Currency != code.String() {
			continue
		}

		return types.Rates{
			code: types.CurrencyRate{
				Sale:     record.SaleRate,
				Purchase: record.PurchaseRate,
			},
		}, true
	}

	return nil, false
}
