package pool

import (
	"errors"
	"sync"
	"sync/atomic"

	"prime-grid/internal/logger"
)

// MaxWorkers はワーカー数の上限
const MaxWorkers = 100

var (
	// ErrInvalidWorkerCount はワーカー数が範囲外の場合に返される
	ErrInvalidWorkerCount = errors.New("pool: worker count must be between 0 and 100")
	// ErrStopped は停止済みプールへの投入時に返される
	ErrStopped = errors.New("pool: pool is stopped")
	// ErrNilJob はジョブ関数が nil の場合に返される
	ErrNilJob = errors.New("pool: job function must not be nil")
)

// Mode はジョブの投入モード
type Mode int

const (
	// WaitForWorker は空きワーカーが出るまで呼び出し元をブロックする
	WaitForWorker Mode = iota
	// RunInline は呼び出し元のゴルーチンで即時・同期実行する
	RunInline
)

// Pool は固定数の常駐ワーカーを管理する
// キューは持たず、投入は空きワーカーへの直接手渡しでブロックする
type Pool struct {
	workers []*Worker
	jobs    chan *Job      // バッファなし: 手渡し = バックプレッシャ
	wg      sync.WaitGroup // ワーカーゴルーチン
	jobsWG  sync.WaitGroup // 未完了ジョブ

	mu         sync.Mutex
	cond       *sync.Cond
	nextTicket uint64              // 次に発行するチケット
	admit      uint64              // Ordered 区間へ入れる次のチケット
	skipped    map[uint64]struct{} // Ordered を使わず完了したチケット
	stopped    bool

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// New は workerCount 個の常駐ワーカーを持つプールを作成する
// workerCount が 0 の場合、ワーカーは作られず全ジョブが呼び出し元で同期実行される
func New(workerCount int) (*Pool, error) {
	if workerCount < 0 || workerCount > MaxWorkers {
		return nil, ErrInvalidWorkerCount
	}

	p := &Pool{
		nextTicket: 1,
		admit:      1,
		skipped:    make(map[uint64]struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	if workerCount > 0 {
		p.jobs = make(chan *Job)
		p.workers = make([]*Worker, workerCount)
		for i := 0; i < workerCount; i++ {
			w := newWorker(i)
			p.workers[i] = w
			p.wg.Add(1)
			go p.workerLoop(w)
		}
	}

	logger.Debug("pool", "created with %d workers", workerCount)
	return p, nil
}

// workerLoop は個々のワーカーの本体
// ジョブ間では Idle に戻り、チャネルが閉じられたら Terminated になる
func (p *Pool) workerLoop(w *Worker) {
	defer p.wg.Done()

	for j := range p.jobs {
		w.state.Store(int32(WorkerBusy))
		j.run(w)
		w.state.Store(int32(WorkerIdle))
		p.completed.Add(1)
		p.jobsWG.Done()
	}
	w.state.Store(int32(WorkerTerminated))
}

// Submit はジョブを一つ投入する
// チケットは呼び出し時点で確定し、Ordered の実行順を決める
// WaitForWorker では空きワーカーが出るまでブロックし、ジョブは並行実行される
// RunInline（またはワーカー数 0 のプール）ではその場で同期実行して戻る
func (p *Pool) Submit(fn JobFunc, mode Mode) error {
	if fn == nil {
		return ErrNilJob
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	ticket := p.nextTicket
	p.nextTicket++
	p.jobsWG.Add(1)
	p.mu.Unlock()

	p.submitted.Add(1)
	j := &Job{pool: p, fn: fn, ticket: ticket}

	if mode == RunInline || len(p.workers) == 0 {
		j.run(nil)
		p.completed.Add(1)
		p.jobsWG.Done()
		return nil
	}

	p.jobs <- j
	return nil
}

// WaitAll は投入済みの全ジョブの完了と全ワーカーの Idle 復帰を待つ
// 新規投入がなければ二度目以降の呼び出しは即座に戻る
func (p *Pool) WaitAll() {
	p.jobsWG.Wait()
}

// Shutdown は全ジョブの完了を待った上でワーカーを終了し、プールを破棄する
// Busy なワーカーが残ったまま戻ることはない。二度目以降の呼び出しは no-op
// Shutdown 後のプール操作は事前条件違反（Submit は ErrStopped を返す）
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	p.jobsWG.Wait()
	if p.jobs != nil {
		close(p.jobs)
	}
	p.wg.Wait()

	logger.Debug("pool", "shut down after %d jobs (%d failed)", p.completed.Load(), p.failed.Load())
}

// advanceLocked は admit を進め、スキップ済みチケットを飛ばして待機者を起こす
// p.mu を保持して呼ぶこと
func (p *Pool) advanceLocked() {
	p.admit++
	for {
		if _, ok := p.skipped[p.admit]; !ok {
			break
		}
		delete(p.skipped, p.admit)
		p.admit++
	}
	p.cond.Broadcast()
}

// releaseLocked は Ordered を呼ばずに完了したジョブのチケットを解放する
// p.mu を保持して呼ぶこと
func (p *Pool) releaseLocked(ticket uint64) {
	if p.admit == ticket {
		p.advanceLocked()
	} else {
		p.skipped[ticket] = struct{}{}
	}
}

// NumWorkers はワーカー数を返す
func (p *Pool) NumWorkers() int {
	return len(p.workers)
}

// BusyWorkers は Busy 状態のワーカー数を返す
func (p *Pool) BusyWorkers() int {
	busy := 0
	for _, w := range p.workers {
		if w.State() == WorkerBusy {
			busy++
		}
	}
	return busy
}

// Submitted は投入されたジョブの総数を返す
func (p *Pool) Submitted() uint64 {
	return p.submitted.Load()
}

// Completed は完了したジョブの総数を返す
func (p *Pool) Completed() uint64 {
	return p.completed.Load()
}

// Failed はエラーを返したジョブの総数を返す
func (p *Pool) Failed() uint64 {
	return p.failed.Load()
}
