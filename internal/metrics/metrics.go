package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_logins_total",
		Help: "Successful OAuth callback logins.",
	})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_login_failures_total",
		Help: "OAuth callbacks that failed code exchange or verification.",
	})

	ItemsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_items_created_total",
		Help: "Items successfully created.",
	})

	ItemsReportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_items_reported_total",
		Help: "Report operations that marked an item reported.",
	})

	ItemsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_items_deleted_total",
		Help: "Items permanently deleted.",
	})

	ForbiddenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reclaim_forbidden_total",
		Help: "Requests denied with 403 by the item authorization rules.",
	}, []string{"operation"})
)
