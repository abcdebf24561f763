package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	opAdd    = "add"
	opToggle = "toggle"
	opEdit   = "edit"
	opDelete = "delete"
	opSeed   = "seed"
)

var (
	listOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_list_operations_total",
			Help: "Total number of applied grocery list mutations",
		},
		[]string{"operation"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grocery_persist_failures_total",
			Help: "Total number of failed grocery list writes to the blob store",
		},
	)

	loadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grocery_load_failures_total",
			Help: "Total number of grocery list blobs that could not be read or decoded",
		},
	)
)
