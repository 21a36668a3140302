package order

// Book is the ordered order collection. Only Status ever changes after an
// order is appended. Book is not safe for concurrent use.
type Book struct {
	orders []Order
}

func NewBook(orders []Order) *Book {
	b := &Book{}
	b.Replace(orders)
	return b
}

func (b *Book) Replace(orders []Order) {
	b.orders = make([]Order, 0, len(orders))
	for _, o := range orders {
		b.orders = append(b.orders, o.clone())
	}
}

func (b *Book) Append(o Order) {
	b.orders = append(b.orders, o.clone())
}

// With returns the collection as it would be after Append(o).
func (b *Book) With(o Order) []Order {
	return append(b.All(), o.clone())
}

func (b *Book) Get(id string) (Order, bool) {
	for _, o := range b.orders {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return Order{}, false
}

// SetStatus overwrites the status of order id without any transition check.
// It returns the previous status and whether the order exists.
func (b *Book) SetStatus(id string, st Status) (Status, bool) {
	for i := range b.orders {
		if b.orders[i].ID == id {
			prev := b.orders[i].Status
			b.orders[i].Status = st
			return prev, true
		}
	}
	return "", false
}

// ForUser returns userID's orders in insertion order.
func (b *Book) ForUser(userID string) []Order {
	out := []Order{}
	for _, o := range b.orders {
		if o.UserID == userID {
			out = append(out, o.clone())
		}
	}
	return out
}

func (b *Book) All() []Order {
	out := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o.clone())
	}
	return out
}

func (b *Book) Len() int { return len(b.orders) }
