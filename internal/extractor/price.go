package extractor

import (
	"fmt"
	"strconv"
	"strings"
)

// currencyCleaner strips currency symbols, thousands separators and
// non-breaking spaces ahead of numeric conversion.
var currencyCleaner = strings.NewReplacer(
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	"₩", "",
	",", "",
	" ", "",
	" ", "",
)

// ParsePrice normalizes a price string and converts it to a number.
func ParsePrice(text string) (float64, error) {
	clean := strings.TrimSpace(currencyCleaner.Replace(text))
	if clean == "" {
		return 0, fmt.Errorf("empty price text %q", text)
	}

	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price text %q: %w", text, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", text)
	}
	return price, nil
}
