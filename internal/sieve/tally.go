package sieve

// Tally は複数スライスの結果を集約するアキュムレータ
//
// 所有者は計算の投入側で、ジョブからの更新は pool の Ordered 区間を通して
// のみ行うこと。Tally 自体は同期を持たない。合計は加算、最後の素数は
// より大きい値のみ採用するため、投入順に適用すれば結果は決定的になる
type Tally struct {
	primes uint64
	last   uint64
}

// NewTally は初期値付きの Tally を作成する
// 基底表の計算結果をそのまま初期値にできる
func NewTally(primes, last uint64) *Tally {
	return &Tally{
		primes: primes,
		last:   last,
	}
}

// Add はスライス一つ分の結果を加える
func (t *Tally) Add(count, last uint64) {
	t.primes += count
	if last > t.last {
		t.last = last
	}
}

// Primes は現在の素数の合計を返す
func (t *Tally) Primes() uint64 {
	return t.primes
}

// Last は現在までの最後の素数を返す
func (t *Tally) Last() uint64 {
	return t.last
}
