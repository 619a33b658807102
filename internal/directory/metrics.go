package directory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultMember    = "member"
	resultNotMember = "not_member"
	resultError     = "error"
)

var lookups = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "directory_lookups_total",
		Help: "Number of group membership lookups, differentiated by directory kind and result.",
	},
	[]string{"kind", "result"},
)

func observe(kind string, member bool) {
	if member {
		lookups.WithLabelValues(kind, resultMember).Inc()
		return
	}

	lookups.WithLabelValues(kind, resultNotMember).Inc()
}

func observeError(kind string) {
	lookups.WithLabelValues(kind, resultError).Inc()
}
