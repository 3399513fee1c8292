// Package metrics はPrometheus形式のメトリクスを提供します。
// コレクタはパッケージ専用のレジストリへ登録され、Handlerで公開されます。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linkdrop"

var (
	// HTTPRequests はHTTPリクエスト数です
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration はHTTPリクエストの処理時間です
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StorageDeletes はストレージオブジェクト削除の結果別件数です
	StorageDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_deletes_total",
			Help:      "Storage object deletions by result",
		},
		[]string{"result"},
	)

	// OrphanedRecords はストレージ削除後にDB行が残った件数です
	OrphanedRecords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_records_total",
			Help:      "File rows left behind after their storage object was deleted",
		},
	)

	// OrphansReconciled は回収ジョブが解消した孤立レコード数です
	OrphansReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphans_reconciled_total",
			Help:      "Orphaned file rows removed by reconciliation",
		},
	)

	// BulkDeleteOutcomes は一括削除の結果種別ごとの件数です (complete, partial, failed)
	BulkDeleteOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_delete_outcomes_total",
			Help:      "Bulk delete operations by outcome",
		},
		[]string{"outcome"},
	)

	// ArchiveBuilds はアーカイブ生成の結果別件数です
	ArchiveBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_builds_total",
			Help:      "Archive builds by result",
		},
		[]string{"result"},
	)

	// BreakerState はサーキットブレーカーの状態です (0=closed, 1=half-open, 2=open)
	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry = newRegistry()
)

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		StorageDeletes,
		OrphanedRecords,
		OrphansReconciled,
		BulkDeleteOutcomes,
		ArchiveBuilds,
		BreakerState,
	)
	return r
}

// Registry はメトリクスのレジストリを返します
func Registry() *prometheus.Registry {
	return registry
}

// Handler は /metrics 用のHTTPハンドラを返します
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
