package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_products_created_total",
		Help: "Total number of products registered",
	})

	StockAdjustmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_adjustments_total",
		Help: "Total number of stock quantity adjustments",
	})

	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_transactions_total",
		Help: "Total number of transactions appended to the log",
	}, []string{"kind"})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_validation_failures_total",
		Help: "Total number of rejected operations",
	}, []string{"reason"})

	StoreLoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_store_loads_total",
		Help: "Total number of document loads from disk",
	})

	StoreSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_store_saves_total",
		Help: "Total number of full document writes to disk",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
