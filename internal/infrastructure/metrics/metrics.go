// Package metrics содержит метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bikeshop_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeshop_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// PricingRequestsTotal считает вызовы движка цен. outcome: ok, error или вид отказа.
	PricingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeshop_pricing_requests_total",
		Help: "Total number of configuration pricing and validation requests",
	}, []string{"operation", "outcome"})

	PricingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bikeshop_pricing_duration_seconds",
		Help:    "Configuration pricing latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	CartsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikeshop_carts_created_total",
		Help: "Total number of carts created",
	})

	CartsPurchasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikeshop_carts_purchased_total",
		Help: "Total number of carts marked as purchased",
	})

	OutboxPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeshop_outbox_published_total",
		Help: "Outbox events published to Kafka",
	}, []string{"event_type", "result"})

	// CacheRequestsTotal — обращения к кэшу карточек товара. result: hit, miss, error.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeshop_product_cache_requests_total",
		Help: "Product detail cache lookups",
	}, []string{"result"})
)
