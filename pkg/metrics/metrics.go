package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 指标管理器
type Metrics struct {
	// HTTP请求指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 云端 AI 调用指标
	aiCallsTotal   *prometheus.CounterVec
	aiCallDuration *prometheus.HistogramVec

	// 语音缓存指标
	speechCacheHitsTotal   prometheus.Counter
	speechCacheMissesTotal prometheus.Counter

	// 翻译记忆化缓存指标
	mtCacheHitsTotal   prometheus.Counter
	mtCacheMissesTotal prometheus.Counter
}

// NewMetrics 创建指标管理器
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		aiCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_calls_total",
				Help: "Total number of cloud AI calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		aiCallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_call_duration_seconds",
				Help:    "Cloud AI call duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		speechCacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speech_cache_hits_total",
			Help: "Speech synthesis cache hits",
		}),
		speechCacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "speech_cache_misses_total",
			Help: "Speech synthesis cache misses",
		}),
		mtCacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mt_cache_hits_total",
			Help: "Translation memoization cache hits",
		}),
		mtCacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mt_cache_misses_total",
			Help: "Translation memoization cache misses",
		}),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAICall 记录一次云端 AI 调用；operation 为 ocr / translate / tts
func (m *Metrics) RecordAICall(operation string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.aiCallsTotal.WithLabelValues(operation, result).Inc()
	m.aiCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SpeechCacheHit 语音缓存命中
func (m *Metrics) SpeechCacheHit() { m.speechCacheHitsTotal.Inc() }

// SpeechCacheMiss 语音缓存未命中
func (m *Metrics) SpeechCacheMiss() { m.speechCacheMissesTotal.Inc() }

// MTCacheHit 翻译缓存命中
func (m *Metrics) MTCacheHit() { m.mtCacheHitsTotal.Inc() }

// MTCacheMiss 翻译缓存未命中
func (m *Metrics) MTCacheMiss() { m.mtCacheMissesTotal.Inc() }
