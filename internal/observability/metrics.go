package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Pages fetched and extracted successfully",
		},
	)
	PagesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_failed_total",
			Help: "Pages skipped after fetch or extraction failure",
		},
	)
	RecordsExported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "records_exported_total",
			Help: "Records written to the output feed",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(PagesFetched, PagesFailed, RecordsExported)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
