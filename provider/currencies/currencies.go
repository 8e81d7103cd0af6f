package currencies

import "github.com/sig-0/pbrates/storage/types"

var (
	USD types.Currency = "USD"
	EUR types.Currency = "EUR"
)

// Tracked returns the currencies extracted from every day, in extraction order
func Tracked() []types.Currency {
	return []types.Currency{EUR, USD}
}
