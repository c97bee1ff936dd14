package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "filedrop"

// UploadMetrics exports chunk, assembly and download counters to Prometheus.
type UploadMetrics struct {
	chunksReceived   prometheus.Counter
	chunkBytes       prometheus.Counter
	chunksRejected   *prometheus.CounterVec
	assemblies       *prometheus.CounterVec
	assemblyDuration prometheus.Histogram
	artifactBytes    prometheus.Counter
	servedBytes      prometheus.Counter
	sessionsSwept    prometheus.Counter
	storageFree      *prometheus.GaugeVec
	storageUsed      *prometheus.GaugeVec
}

func NewUploadMetrics(reg prometheus.Registerer) (*UploadMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &UploadMetrics{
		chunksReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_received_total",
			Help:      "Chunks persisted and registered with the session tracker.",
		}),
		chunkBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_bytes_total",
			Help:      "Cumulative size of registered chunks.",
		}),
		chunksRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_rejected_total",
			Help:      "Chunk arrivals that were not registered, by reason.",
		}, []string{"reason"}),
		assemblies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assemblies_total",
			Help:      "Assembly attempts, by result.",
		}, []string{"result"}),
		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Time spent concatenating chunks into an artifact.",
			Buckets:   prometheus.DefBuckets,
		}),
		artifactBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assembled_bytes_total",
			Help:      "Cumulative size of assembled artifacts.",
		}),
		servedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "served_bytes_total",
			Help:      "Cumulative size of artifacts opened for download.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Stale upload sessions discarded by the sweeper.",
		}),
		storageFree: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_free_bytes",
			Help:      "Free space on the filesystem holding each storage area.",
		}, []string{"area"}),
		storageUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_used_percent",
			Help:      "Used space on the filesystem holding each storage area.",
		}, []string{"area"}),
	}

	collectors := []prometheus.Collector{
		m.chunksReceived, m.chunkBytes, m.chunksRejected, m.assemblies,
		m.assemblyDuration, m.artifactBytes, m.servedBytes, m.sessionsSwept,
		m.storageFree, m.storageUsed,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register upload metric: %w", err)
		}
	}
	return m, nil
}

func (m *UploadMetrics) ChunkReceived(bytes int64) {
	m.chunksReceived.Inc()
	m.chunkBytes.Add(float64(bytes))
}

func (m *UploadMetrics) ChunkRejected(reason string) {
	m.chunksRejected.WithLabelValues(reason).Inc()
}

func (m *UploadMetrics) AssemblyFinished(result string, seconds float64, bytes int64) {
	m.assemblies.WithLabelValues(result).Inc()
	m.assemblyDuration.Observe(seconds)
	if bytes > 0 {
		m.artifactBytes.Add(float64(bytes))
	}
}

func (m *UploadMetrics) ArtifactServed(bytes int64) {
	m.servedBytes.Add(float64(bytes))
}

func (m *UploadMetrics) SessionsSwept(count int) {
	m.sessionsSwept.Add(float64(count))
}

func (m *UploadMetrics) StorageUsage(area string, freeBytes uint64, usedPercent float64) {
	m.storageFree.WithLabelValues(area).Set(float64(freeBytes))
	m.storageUsed.WithLabelValues(area).Set(usedPercent)
}

// NopObserver discards every measurement.
type NopObserver struct{}

func (NopObserver) ChunkReceived(int64) {}

func (NopObserver) ChunkRejected(string) {}

func (NopObserver) AssemblyFinished(string, float64, int64) {}

func (NopObserver) ArtifactServed(int64) {}

func (NopObserver) SessionsSwept(int) {}

func (NopObserver) StorageUsage(string, uint64, float64) {}
