package product

import "time"

// UnknownName is the display name used until a page yields a real title.
const UnknownName = "Unknown Product"

// TrackedProduct is one monitored product page. CurrentPrice is nil until the
// first successful observation, or when the last observation failed at
// creation time. LowestPrice is nil exactly when CurrentPrice has never been
// set, and never increases afterwards.
type TrackedProduct struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	DisplayName   string     `json:"product_name"`
	CurrentPrice  *float64   `json:"current_price"`
	LowestPrice   *float64   `json:"lowest_price"`
	LastCheckedAt *time.Time `json:"last_check,omitempty"`
}

// Observation is one successful price reading for a product.
type Observation struct {
	Price float64
	Name  string
	At    time.Time
}

// Apply records a successful observation on the product. It returns whether
// the new price is strictly below the immediately preceding observed price,
// together with that previous price. A first observation never reports a
// drop, even when it sets the lowest price.
func (p *TrackedProduct) Apply(obs Observation) (dropped bool, oldPrice float64) {
	previous := p.CurrentPrice

	name := obs.Name
	if name == "" {
		name = UnknownName
	}
	p.DisplayName = name

	price := obs.Price
	p.CurrentPrice = &price

	at := obs.At
	p.LastCheckedAt = &at

	if p.LowestPrice == nil || price < *p.LowestPrice {
		lowest := price
		p.LowestPrice = &lowest
	}

	if previous != nil && price < *previous {
		return true, *previous
	}
	return false, 0
}
