package costkey

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyCost = errors.New("empty value")

// ParseCost parses a cost export amount. Surrounding whitespace is ignored and
// exponent notation ("1.5E-3") is accepted. The result is exact, so summing
// parsed costs does not depend on the order they are added in.
func ParseCost(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errEmptyCost
	}
	return decimal.NewFromString(s)
}
