package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"FurniStore/internal/cart"
)

var (
	ErrEmptyCartOrNoSession = errors.New("cart is empty or no user is signed in")
	ErrUnknownStatus        = errors.New("unknown order status")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipping   Status = "Shipping"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusShipping, StatusCompleted, StatusCancelled}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// InProgress reports whether the order has been accepted but not finished.
func (s Status) InProgress() bool {
	return s == StatusProcessing || s == StatusShipping
}

// Line is the snapshot of a cart line at checkout.
type Line struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image"`
}

type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Items      []Line    `json:"items"`
	TotalCents int64     `json:"total_cents"`
	Status     Status    `json:"status"`
	Date       time.Time `json:"date"`
}

// NewID returns a unique, time-ordered order id.
func NewID() string {
	return "o_" + uuid.Must(uuid.NewV7()).String()
}

// New snapshots cart lines into a pending order.
func New(userID, userEmail string, lines []cart.Line, totalCents int64, now time.Time) Order {
	items := make([]Line, 0, len(lines))
	for _, l := range lines {
		items = append(items, Line{
			ID:         l.ProductID,
			Name:       l.Name,
			PriceCents: l.PriceCents,
			Quantity:   l.Quantity,
			Image:      l.Image,
		})
	}

	return Order{
		ID:         NewID(),
		UserID:     userID,
		UserEmail:  userEmail,
		Items:      items,
		TotalCents: totalCents,
		Status:     StatusPending,
		Date:       now.UTC(),
	}
}

func (o Order) clone() Order {
	o.Items = append([]Line(nil), o.Items...)
	return o
}

// Summary counts a user's orders the way the account dashboard shows them.
type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
}

func Summarize(orders []Order) Summary {
	s := Summary{Total: len(orders)}
	for _, o := range orders {
		switch {
		case o.Status == StatusCompleted:
			s.Completed++
		case o.Status.InProgress():
			s.InProgress++
		}
	}
	return s
}
