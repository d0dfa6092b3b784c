package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Config はメトリクス収集の設定
type Config struct {
	MaxSampleCount int // P99 計算に保持するサンプル数の上限
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		MaxSampleCount: 1000,
	}
}

// Metrics はスライス計算のメトリクスを収集する
type Metrics struct {
	slicesDone atomic.Uint64
	totalNs    atomic.Uint64

	mu         sync.RWMutex
	startTime  time.Time
	samples    []time.Duration
	maxSamples int
}

// New は新しいメトリクスを作成する
func New() *Metrics {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig は設定を指定してメトリクスを作成する
func NewWithConfig(config Config) *Metrics {
	maxSamples := config.MaxSampleCount
	if maxSamples <= 0 {
		maxSamples = 1000
	}
	return &Metrics{
		startTime:  time.Now(),
		samples:    make([]time.Duration, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

// RecordSlice はスライス一つ分の計算時間を記録する
func (m *Metrics) RecordSlice(elapsed time.Duration) {
	m.slicesDone.Add(1)
	m.totalNs.Add(uint64(elapsed.Nanoseconds()))

	m.mu.Lock()
	if len(m.samples) < m.maxSamples {
		m.samples = append(m.samples, elapsed)
	}
	m.mu.Unlock()
}

// SlicesDone は完了したスライス数を返す
func (m *Metrics) SlicesDone() uint64 {
	return m.slicesDone.Load()
}

// AverageSliceTime はスライスあたりの平均計算時間を返す
func (m *Metrics) AverageSliceTime() time.Duration {
	done := m.slicesDone.Load()
	if done == 0 {
		return 0
	}
	return time.Duration(m.totalNs.Load() / done)
}

// P99SliceTime はスライス計算時間の P99 を返す（サンプルベース）
func (m *Metrics) P99SliceTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.samples) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(m.samples))
	copy(sorted, m.samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	idx := len(sorted) * 99 / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// SlicesPerSecond は開始からの平均スループットを返す
func (m *Metrics) SlicesPerSecond() float64 {
	m.mu.RLock()
	start := m.startTime
	m.mu.RUnlock()

	elapsed := time.Since(start).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(m.slicesDone.Load()) / elapsed
}

// Snapshot はメトリクスのスナップショット
type Snapshot struct {
	SlicesDone      uint64
	AvgSliceTime    time.Duration
	P99SliceTime    time.Duration
	SlicesPerSecond float64
	Elapsed         time.Duration
}

// Snapshot は現在のメトリクスのスナップショットを返す
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	start := m.startTime
	m.mu.RUnlock()

	return Snapshot{
		SlicesDone:      m.slicesDone.Load(),
		AvgSliceTime:    m.AverageSliceTime(),
		P99SliceTime:    m.P99SliceTime(),
		SlicesPerSecond: m.SlicesPerSecond(),
		Elapsed:         time.Since(start),
	}
}
