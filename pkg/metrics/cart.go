package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart activity from post-mutation snapshots.
type CartMetrics struct {
	mutations prometheus.Counter
	items     prometheus.Histogram
	value     prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied (add, update, remove, clear).",
	})
	items := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_items",
		Help:    "Cart size in units after each mutation.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	value := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_value",
		Help:    "Cart value in whole currency units after each mutation.",
		Buckets: prometheus.ExponentialBuckets(50, 2, 10),
	})
	reg.MustRegister(mutations, items, value)
	return &CartMetrics{
		mutations: mutations,
		items:     items,
		value:     value,
	}
}

// ObserveMutation records one mutation with the resulting cart size and value.
func (c *CartMetrics) ObserveMutation(items, total int) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.Inc()
	c.items.Observe(float64(items))
	c.value.Observe(float64(total))
}
