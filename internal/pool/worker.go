package pool

import "sync/atomic"

// WorkerState はワーカーの状態を表す
type WorkerState int32

const (
	// WorkerIdle はジョブ待ちの状態
	WorkerIdle WorkerState = iota
	// WorkerBusy はジョブ実行中の状態
	WorkerBusy
	// WorkerTerminated は Shutdown 後の終了状態
	WorkerTerminated
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "Idle"
	case WorkerBusy:
		return "Busy"
	case WorkerTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Worker はプール生成時に作られ、Shutdown まで生き続ける実行単位
// 遷移は Idle → Busy → Idle のみで、Terminated へは Idle からしか入らない
type Worker struct {
	id    int
	state atomic.Int32
}

func newWorker(id int) *Worker {
	return &Worker{id: id}
}

// ID はワーカーの識別子を返す
func (w *Worker) ID() int {
	return w.id
}

// State は現在の状態を返す
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}
