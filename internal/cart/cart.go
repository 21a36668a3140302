// Package cart holds the shopping cart of the active session.
package cart

import "FurniStore/internal/catalog"

// Line is a product snapshot taken when the product was first added.
type Line struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Cart is an ordered list of lines, unique by product id. No line ever holds
// a quantity below one. Cart is not safe for concurrent use.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of p in the cart. Quantities below one count as one.
func (c *Cart) Add(p catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}

	c.lines = append(c.lines, Line{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   quantity,
		Image:      p.MainImage(),
	})
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. It reports whether a line was found.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return true
	}
	c.lines[i].Quantity = quantity
	return true
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Total is recomputed from the lines on every call.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}
