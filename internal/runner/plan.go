package runner

import (
	"errors"
	"math"
)

const (
	// MinMax は計算できる最小の上限値
	MinMax = 10
	// MaxMax は計算できる最大の上限値（1000兆）
	MaxMax = 1_000_000_000_000_000

	// sliceLimit を超える上限値はスライス分割する
	sliceLimit = 1 << 20
	// sqrtLimit を超える上限値は基底表を sqrt(max) まで広げる
	sqrtLimit = 1_000_000_000_000
)

var (
	// ErrMaxTooSmall は上限値が小さすぎる場合に返される
	ErrMaxTooSmall = errors.New("runner: max value must be at least 10")
	// ErrMaxTooLarge は上限値が大きすぎる場合に返される
	ErrMaxTooLarge = errors.New("runner: max value is limited to a quadrillion (1e15)")
)

// Plan は計算の分割方針
// 全スライスは基底表と同じ幅で、最後のスライスだけ端数になり得る
type Plan struct {
	Max       uint64 // 素数を数える上限値
	BaseLimit int    // 基底表の上限（16 の倍数）
	Slices    int    // 基底以降のスライス数（0 = 分割なし）
}

// NewPlan は上限値から分割方針を決める
//
// 上限値の大きさに応じて戦略を変える:
//   - 1e12 超: 基底表を sqrt(max) まで広げてメモリと分割数のバランスを取る
//   - 2^20 超: 基底表は 2^20 に固定し、残りをスライス分割する
//   - それ以下: 基底表だけで完結する（スレッド不使用）
func NewPlan(max uint64) (Plan, error) {
	if max > MaxMax {
		return Plan{}, ErrMaxTooLarge
	}
	if max < MinMax {
		return Plan{}, ErrMaxTooSmall
	}

	plan := Plan{Max: max}

	switch {
	case max > sqrtLimit:
		base := int(math.Ceil(math.Sqrt(float64(max))))
		base += -base & 0xf
		plan.BaseLimit = base
		plan.Slices = int(math.Ceil(float64(max-uint64(base)) / float64(base)))
	case max > sliceLimit:
		plan.BaseLimit = sliceLimit
		plan.Slices = int(math.Ceil(float64(max-sliceLimit) / float64(sliceLimit)))
	default:
		base := int(max)
		base += -base & 0xf
		plan.BaseLimit = base
	}

	return plan, nil
}

// SliceStart はスライスの開始値を返す（slice は 1 始まり）
func (p Plan) SliceStart(slice int) uint64 {
	return uint64(p.BaseLimit) * uint64(slice)
}

// SliceValues はスライスが受け持つ値の個数を返す
// 最後のスライスだけ端数まで切り詰められる
func (p Plan) SliceValues(slice int) int {
	if slice == p.Slices {
		return int(p.Max - p.SliceStart(slice))
	}
	return p.BaseLimit
}
