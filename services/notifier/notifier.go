package notifier

import (
	"context"
	"fmt"
)

// Notifier delivers a human-readable message to the configured recipient.
// Delivery failures are logged and swallowed by callers; a failed
// notification never aborts a sweep or a registration.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// DropMessage builds the alert sent when a product's price falls below the
// previously observed price.
func DropMessage(name string, oldPrice, newPrice float64, url string) string {
	return fmt.Sprintf(
		"🚨 *PRICE DROP ALERT!* 🚨\n\n%s dropped from ₹%.2f to ₹%.2f (saving ₹%.2f).\n\n[View Product](%s)",
		name, oldPrice, newPrice, oldPrice-newPrice, url,
	)
}

// AddedMessage builds the notice sent when tracking starts for a product
// whose first scrape observed a price.
func AddedMessage(name string, price float64, url string) string {
	return fmt.Sprintf(
		"✅ *NEW PRODUCT ADDED!* ✅\n\nTracking *%s* at ₹%.2f.\n[View Product](%s)",
		name, price, url,
	)
}
