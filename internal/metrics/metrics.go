package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_placed_total",
		Help: "Orders successfully placed through checkout.",
	})

	CartAdds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_cart_adds_total",
		Help: "Products added to shopping carts.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)
