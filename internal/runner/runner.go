package runner

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"prime-grid/internal/events"
	"prime-grid/internal/logger"
	"prime-grid/internal/metrics"
	"prime-grid/internal/pool"
	"prime-grid/internal/sieve"

	"github.com/google/uuid"
)

// Config は実行の設定
type Config struct {
	Name        string // 実行名
	Description string // 説明
	Max         uint64 // 素数を数える上限値
	Workers     int    // ワーカー数（0 = スレッド不使用）
	Progress    bool   // stderr への進捗表示を有効化
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Name:        "default",
		Description: "Default run",
		Max:         100_000_000,
		Workers:     4,
		Progress:    true,
	}
}

// Result は実行結果
type Result struct {
	RunID   string
	Name    string
	Max     uint64
	Workers int

	BaseLimit int
	Slices    int

	TotalPrimes uint64
	LastPrime   uint64

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// メトリクス
	SlicesDone      uint64
	AvgSliceTime    time.Duration
	P99SliceTime    time.Duration
	SlicesPerSecond float64
}

// Engine は実行エンジン
type Engine struct {
	config   Config
	eventBus *events.Bus

	mu      sync.RWMutex
	running bool
	plan    Plan
	metrics *metrics.Metrics
}

// New は新しい Engine を作成する
func New(config Config) *Engine {
	return &Engine{
		config:  config,
		metrics: metrics.New(),
	}
}

// SetEventBus はイベントバスを設定する
func (e *Engine) SetEventBus(bus *events.Bus) {
	e.eventBus = bus
}

// publish はイベントバスが設定されていれば発行する
func (e *Engine) publish(event events.Event) {
	if e.eventBus != nil {
		e.eventBus.Publish(event)
	}
}

// Run は計算を実行する
//
// ctx のキャンセルは新規スライスの投入を止めるだけで、実行中のジョブは
// 完了まで走る。キャンセル時は投入済みジョブの完了を待ってからエラーを返す
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("run is already in progress")
	}

	plan, err := NewPlan(e.config.Max)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}

	e.running = true
	e.plan = plan
	e.metrics = metrics.New()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	runID := uuid.NewString()

	result := &Result{
		RunID:     runID,
		Name:      e.config.Name,
		Max:       e.config.Max,
		Workers:   e.config.Workers,
		BaseLimit: plan.BaseLimit,
		Slices:    plan.Slices,
		StartTime: time.Now(),
	}

	logger.Info("run", "=== Run '%s' started (max=%d, workers=%d, slices=%d) ===",
		e.config.Name, e.config.Max, e.config.Workers, plan.Slices)
	e.publish(events.NewRunStartedEvent(runID, e.config.Max, e.config.Workers, plan.Slices))

	// 基底表の構築と基底区間の計数
	base := sieve.NewBase(plan.BaseLimit)
	count, last := base.Count(e.config.Max)
	tally := sieve.NewTally(count, last)

	if plan.Slices > 0 {
		logger.Info("run", "base primes: %d primes below %d; the last is %d",
			count, plan.BaseLimit, last)

		if err := e.runSlices(ctx, runID, plan, base, tally); err != nil {
			e.publish(events.NewRunFailedEvent(runID, err))
			return nil, err
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.TotalPrimes = tally.Primes()
	result.LastPrime = tally.Last()
	e.collectMetrics(result)

	logger.Info("run", "=== Run '%s' completed: %d primes, last %d ===",
		e.config.Name, result.TotalPrimes, result.LastPrime)
	e.publish(events.NewRunCompletedEvent(runID, result.TotalPrimes, result.LastPrime))

	return result, nil
}

// runSlices は全スライスをプールへ投入し、完了まで待つ
func (e *Engine) runSlices(ctx context.Context, runID string, plan Plan, base *sieve.Base, tally *sieve.Tally) error {
	p, err := pool.New(e.config.Workers)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer p.Shutdown()

	logger.Info("run", "processing %d slices using %d workers...", plan.Slices, e.config.Workers)

	progressPercent := -1
	cancelled := false

	for slice := 1; slice <= plan.Slices; slice++ {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		sliceNo := slice
		start := plan.SliceStart(slice)
		values := plan.SliceValues(slice)

		job := func(j *pool.Job) error {
			begin := time.Now()
			n, l := base.SliceCount(start, values)
			elapsed := time.Since(begin)

			j.Ordered(func() {
				tally.Add(n, l)
			})

			e.metrics.RecordSlice(elapsed)
			e.publish(events.NewSliceCompletedEvent(runID, sliceNo, plan.Slices, n))
			return nil
		}

		// 最後のスライスは呼び出し元で実行する
		// どのみち直後に全ジョブの完了を待つので、ワーカー枠を浪費しない
		mode := pool.WaitForWorker
		if slice == plan.Slices {
			mode = pool.RunInline
		}

		if err := p.Submit(job, mode); err != nil {
			return fmt.Errorf("failed to submit slice %d: %w", slice, err)
		}

		if e.config.Progress && plan.Slices > 1000 {
			percent := (slice*100 + plan.Slices/2) / plan.Slices
			if percent != progressPercent {
				progressPercent = percent
				suffix := " "
				if percent == 100 {
					suffix = " (done)\n"
				}
				fmt.Fprintf(os.Stderr, "\rprogress: %d%%%s", percent, suffix)
			}
		}
	}

	p.WaitAll()

	if cancelled {
		return fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return nil
}

// collectMetrics は結果にメトリクスを反映する
func (e *Engine) collectMetrics(result *Result) {
	snapshot := e.metrics.Snapshot()
	result.SlicesDone = snapshot.SlicesDone
	result.AvgSliceTime = snapshot.AvgSliceTime
	result.P99SliceTime = snapshot.P99SliceTime
	result.SlicesPerSecond = snapshot.SlicesPerSecond
}

// IsRunning は実行中かどうかを返す
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Progress は完了スライス数と総スライス数を返す
func (e *Engine) Progress() (done uint64, total int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.SlicesDone(), e.plan.Slices
}

// Metrics は現在のメトリクスのスナップショットを返す
func (e *Engine) Metrics() *metrics.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	snapshot := e.metrics.Snapshot()
	return &snapshot
}

// Report は結果をフォーマットして返す
func (r *Result) Report() string {
	return fmt.Sprintf(`
================================================================================
                            RUN REPORT: %s
================================================================================

EXECUTION SUMMARY
-----------------
  Start Time:     %s
  End Time:       %s
  Duration:       %v

CALCULATION
-----------
  Max Value:      %d
  Base Limit:     %d
  Slices:         %d
  Workers:        %d

RESULT
------
  Total Primes:   %d
  Last Prime:     %d

SLICE METRICS
-------------
  Slices Done:    %d
  Avg Slice:      %v
  P99 Slice:      %v
  Slices/sec:     %.2f

================================================================================`,
		r.Name,
		r.StartTime.Format("2006-01-02 15:04:05"),
		r.EndTime.Format("2006-01-02 15:04:05"),
		r.Duration.Round(time.Millisecond),
		r.Max,
		r.BaseLimit,
		r.Slices,
		r.Workers,
		r.TotalPrimes,
		r.LastPrime,
		r.SlicesDone,
		r.AvgSliceTime.Round(time.Microsecond),
		r.P99SliceTime.Round(time.Microsecond),
		r.SlicesPerSecond,
	)
}
