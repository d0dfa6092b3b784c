package pool

import "prime-grid/internal/logger"

// JobFunc はジョブ本体の関数
// ジョブ内で共有状態を更新する場合は j.Ordered を使うこと
// 返したエラーはプールでは記録するだけで、リトライは行わない
type JobFunc func(j *Job) error

// Job は一度だけ実行される作業単位
// チケットは Submit 時に確定し、実行順や完了順とは独立している
type Job struct {
	pool    *Pool
	fn      JobFunc
	ticket  uint64
	worker  *Worker // RunInline の場合は nil
	entered bool    // Ordered 済みか
}

// Ticket は Submit 時に割り当てられた通し番号を返す
func (j *Job) Ticket() uint64 {
	return j.ticket
}

// Worker はジョブを実行しているワーカーを返す
// RunInline またはワーカー数 0 のプールでは nil
func (j *Job) Worker() *Worker {
	return j.worker
}

// Ordered は fn を投入順の排他区間として実行する
//
// 自分より小さいチケットのジョブがすべて区間を抜ける（または Ordered を
// 呼ばずに完了する）まで呼び出し元をブロックし、fn の実行中は他のジョブの
// Ordered 区間と重ならないことを保証する。解放は fn の全ての脱出経路
// （panic を含む）で行われる
//
// ジョブ関数の中から一度だけ呼べる。二度目の呼び出しは事前条件違反として
// panic する
func (j *Job) Ordered(fn func()) {
	p := j.pool

	p.mu.Lock()
	if j.entered {
		p.mu.Unlock()
		panic("pool: Ordered called twice in the same job")
	}
	j.entered = true

	for p.admit != j.ticket {
		p.cond.Wait()
	}

	defer func() {
		p.advanceLocked()
		p.mu.Unlock()
	}()

	fn()
}

// run はジョブを一度だけ実行する
// Ordered が呼ばれなかった場合は完了時にチケットを解放し、
// 後続のチケットが詰まらないようにする
func (j *Job) run(w *Worker) {
	j.worker = w

	defer func() {
		p := j.pool
		p.mu.Lock()
		if !j.entered {
			p.releaseLocked(j.ticket)
		}
		p.mu.Unlock()
	}()

	if err := j.fn(j); err != nil {
		j.pool.failed.Add(1)
		logger.Warn("pool", "job %d failed: %v", j.ticket, err)
	}
}
