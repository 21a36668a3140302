package order

import (
	"time"

	"FurniStore/internal/catalog"
)

const day = 24 * time.Hour

// Seed returns the demo order history installed at every start, dated
// relative to now.
func Seed(now time.Time) []Order {
	now = now.UTC()
	const (
		userID    = "user"
		userEmail = "user@example.com"
	)

	return []Order{
		{
			ID:        "1",
			UserID:    userID,
			UserEmail: userEmail,
			Items: []Line{
				{ID: 11, Name: "Modern TV Stand", PriceCents: catalog.Cents(499.99), Quantity: 2, Image: "/images/entertainment_unit.png"},
			},
			TotalCents: catalog.Cents(999.98),
			Status:     StatusCompleted,
			Date:       now.Add(-7 * day),
		},
		{
			ID:        "2",
			UserID:    userID,
			UserEmail: userEmail,
			Items: []Line{
				{ID: 25, Name: "Extendable Dining Table", PriceCents: catalog.Cents(1499.99), Quantity: 1, Image: "/images/extendable_table.png"},
			},
			TotalCents: catalog.Cents(1499.99),
			Status:     StatusProcessing,
			Date:       now.Add(-2 * day),
		},
		{
			ID:        "3",
			UserID:    userID,
			UserEmail: userEmail,
			Items: []Line{
				{ID: 28, Name: "Smart Wardrobe", PriceCents: catalog.Cents(1299.99), Quantity: 1, Image: "/images/smart_wardrobe.png"},
				{ID: 29, Name: "Premium Mattress", PriceCents: catalog.Cents(899.99), Quantity: 2, Image: "/images/premium_mattress.png"},
			},
			TotalCents: catalog.Cents(3099.97),
			Status:     StatusShipping,
			Date:       now.Add(-1 * day),
		},
	}
}
