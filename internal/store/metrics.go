package store

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// Collector records storefront domain events. A nil *Collector records nothing.
type Collector struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	revenueCents  prometheus.Counter
	statusChanges *prometheus.CounterVec
	cartChanges   *prometheus.CounterVec
	favorites     prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_registrations_total",
			Help: "Registration attempts by result",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders placed through checkout",
		}),
		revenueCents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_order_revenue_cents_total",
			Help: "Sum of placed order totals in cents",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_status_changes_total",
			Help: "Order status updates by new status",
		}, []string{"status"}),
		cartChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_changes_total",
			Help: "Cart mutations by operation",
		}, []string{"op"}),
		favorites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_favorites",
			Help: "Products currently in favorites",
		}),
	}

	reg.MustRegister(
		c.registrations, c.logins, c.ordersPlaced, c.revenueCents,
		c.statusChanges, c.cartChanges, c.favorites,
	)
	return c
}

func (c *Collector) registration(result string) {
	if c != nil {
		c.registrations.WithLabelValues(result).Inc()
	}
}

func (c *Collector) login(result string) {
	if c != nil {
		c.logins.WithLabelValues(result).Inc()
	}
}

func (c *Collector) orderPlaced(totalCents int64) {
	if c != nil {
		c.ordersPlaced.Inc()
		c.revenueCents.Add(float64(totalCents))
	}
}

func (c *Collector) statusChanged(status string) {
	if c != nil {
		c.statusChanges.WithLabelValues(status).Inc()
	}
}

func (c *Collector) cartChanged(op string) {
	if c != nil {
		c.cartChanges.WithLabelValues(op).Inc()
	}
}

func (c *Collector) favoritesCount(n int) {
	if c != nil {
		c.favorites.Set(float64(n))
	}
}
