package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	MergeRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palapa",
			Name:      "merge_rows_total",
			Help:      "Rows processed by the merge stage, by outcome",
		},
		[]string{"outcome"}, // kept / no_coords / out_of_bounds / duplicate
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palapa",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "palapa",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingZeroVectorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palapa",
			Name:      "embedding_zero_vectors_total",
			Help:      "Records that fell back to a zero vector",
		},
		[]string{"reason"}, // empty_text / provider_error
	)

	StoreBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palapa",
			Name:      "store_batches_total",
			Help:      "Document store batch writes",
		},
		[]string{"status"},
	)

	StoreBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "palapa",
			Name:      "store_batch_duration_seconds",
			Help:      "Document store batch write duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"status"},
	)

	IndexVectors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "palapa",
			Name:      "index_vectors",
			Help:      "Number of vectors in the last built index",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(MergeRowsTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingZeroVectorsTotal)
	prometheus.MustRegister(StoreBatchesTotal)
	prometheus.MustRegister(StoreBatchDuration)
	prometheus.MustRegister(IndexVectors)
	pipelineMetricsRegistered = true
}
