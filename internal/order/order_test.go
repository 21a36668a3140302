package order_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FurniStore/internal/cart"
	"FurniStore/internal/order"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestParseStatus(t *testing.T) {
	st, err := order.ParseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, st)

	st, err = order.ParseStatus("Shipping")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipping, st)

	_, err = order.ParseStatus("Lost")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestNew_SnapshotsLines(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 3, Name: "Chair", PriceCents: 100, Quantity: 2, Image: "/c.png"},
		{ProductID: 5, Name: "Table", PriceCents: 250, Quantity: 1, Image: "/t.png"},
	}

	o := order.New("u1", "u1@example.com", lines, 450, now)

	assert.True(t, strings.HasPrefix(o.ID, "o_"))
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "u1@example.com", o.UserEmail)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, int64(450), o.TotalCents)
	assert.Equal(t, now, o.Date)
	assert.Equal(t, []order.Line{
		{ID: 3, Name: "Chair", PriceCents: 100, Quantity: 2, Image: "/c.png"},
		{ID: 5, Name: "Table", PriceCents: 250, Quantity: 1, Image: "/t.png"},
	}, o.Items)

	lines[0].Quantity = 9
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestNewID_UniqueAndOrdered(t *testing.T) {
	a, b := order.NewID(), order.NewID()
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestSeed(t *testing.T) {
	seed := order.Seed(now)
	require.Len(t, seed, 3)

	var statuses []order.Status
	for _, o := range seed {
		assert.Equal(t, "user", o.UserID)
		statuses = append(statuses, o.Status)

		var sum int64
		for _, it := range o.Items {
			sum += it.PriceCents * int64(it.Quantity)
		}
		assert.Equal(t, o.TotalCents, sum, "order %s", o.ID)
	}
	assert.Equal(t, []order.Status{order.StatusCompleted, order.StatusProcessing, order.StatusShipping}, statuses)
	assert.Equal(t, now.Add(-7*24*time.Hour), seed[0].Date)
}

func TestBook(t *testing.T) {
	b := order.NewBook(order.Seed(now))
	require.Equal(t, 3, b.Len())

	mine := order.New("u2", "u2@example.com", nil, 0, now)
	next := b.With(mine)
	assert.Len(t, next, 4)
	assert.Equal(t, 3, b.Len(), "With does not mutate")

	b.Append(mine)
	assert.Len(t, b.ForUser("u2"), 1)
	assert.Len(t, b.ForUser("user"), 3)
	assert.Empty(t, b.ForUser("nobody"))
	assert.NotNil(t, b.ForUser("nobody"))

	prev, ok := b.SetStatus("1", order.StatusCancelled)
	require.True(t, ok)
	assert.Equal(t, order.StatusCompleted, prev)

	prev, ok = b.SetStatus("1", order.StatusCompleted)
	require.True(t, ok, "any status may follow any status")
	assert.Equal(t, order.StatusCancelled, prev)

	_, ok = b.SetStatus("missing", order.StatusCompleted)
	assert.False(t, ok)

	got, ok := b.Get("3")
	require.True(t, ok)
	got.Items[0].Name = "changed"
	again, _ := b.Get("3")
	assert.Equal(t, "Smart Wardrobe", again.Items[0].Name, "reads are copies")
}

func TestSummarize(t *testing.T) {
	orders := order.Seed(now)
	orders = append(orders, order.Order{Status: order.StatusPending}, order.Order{Status: order.StatusCancelled})

	assert.Equal(t, order.Summary{Total: 5, Completed: 1, InProgress: 2}, order.Summarize(orders))
	assert.Equal(t, order.Summary{}, order.Summarize(nil))
}
