package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result holds whatever could be read off a product page. A nil Price means
// the price could not be determined; an empty Name means the title could not.
// The two are independent: one may be present without the other.
type Result struct {
	Price *float64
	Name  string
}

// Extractor derives a price and display name from fetched page content.
// Implementations never fail; ambiguous content yields an empty Result.
type Extractor interface {
	Extract(content []byte) Result
}

// Price selectors in order of preference. The offscreen price is the most
// reliable; the priceblock ids and the whole-price span are older layouts.
var priceSelectors = []string{
	"span.a-offscreen",
	"span#priceblock_ourprice",
	"span#priceblock_dealprice",
	"span.a-price-whole",
}

const nameSelector = "span#productTitle"

// PageExtractor extracts prices and titles from retail product pages.
type PageExtractor struct{}

var _ Extractor = (*PageExtractor)(nil)

// NewPageExtractor creates a new page extractor
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

// Extract parses the page content. A bot-block indicator in the content
// short-circuits to an empty result without attempting field extraction.
func (e *PageExtractor) Extract(content []byte) Result {
	if bytes.Contains(bytes.ToLower(content), []byte("captcha")) {
		return Result{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return Result{}
	}

	var res Result

	for _, selector := range priceSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if price, err := ParsePrice(text); err == nil {
			res.Price = &price
			break
		}
	}

	res.Name = strings.TrimSpace(doc.Find(nameSelector).First().Text())

	return res
}
