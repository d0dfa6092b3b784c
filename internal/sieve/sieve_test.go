package sieve

import (
	"testing"
)

// naiveCount は単純な篩で [2, max) の素数を数える（テスト用の参照実装）
func naiveCount(max uint64) (count uint64, last uint64) {
	if max < 3 {
		return 0, 0
	}
	composite := make([]bool, max)
	for i := uint64(2); i*i < max; i++ {
		if !composite[i] {
			for j := i * i; j < max; j += i {
				composite[j] = true
			}
		}
	}
	for i := uint64(2); i < max; i++ {
		if !composite[i] {
			count++
			last = i
		}
	}
	return count, last
}

// naiveRange は [start, start+values) の素数を数える（テスト用の参照実装）
func naiveRange(start uint64, values int) (count uint64, last uint64) {
	end := start + uint64(values)
	composite := make([]bool, end)
	for i := uint64(2); i*i < end; i++ {
		if !composite[i] {
			for j := i * i; j < end; j += i {
				composite[j] = true
			}
		}
	}
	for i := start; i < end; i++ {
		if i >= 2 && !composite[i] {
			count++
			last = i
		}
	}
	return count, last
}

func TestNewBaseRoundsUp(t *testing.T) {
	b := NewBase(100)
	if b.Limit() != 112 {
		t.Errorf("expected limit rounded up to 112, got %d", b.Limit())
	}

	b = NewBase(1 << 20)
	if b.Limit() != 1<<20 {
		t.Errorf("expected limit %d, got %d", 1<<20, b.Limit())
	}
}

func TestBaseCountKnownValues(t *testing.T) {
	tests := []struct {
		max   uint64
		count uint64
		last  uint64
	}{
		{100, 25, 97},
		{1000, 168, 997},
		{10000, 1229, 9973},
		{1000000, 78498, 999983},
	}

	for _, tt := range tests {
		b := NewBase(int(tt.max))
		count, last := b.Count(tt.max)
		if count != tt.count {
			t.Errorf("Count(%d) = %d primes, want %d", tt.max, count, tt.count)
		}
		if last != tt.last {
			t.Errorf("Count(%d) last = %d, want %d", tt.max, last, tt.last)
		}
	}
}

func TestBaseCountAgainstNaive(t *testing.T) {
	for _, max := range []uint64{10, 16, 17, 50, 128, 1000, 4096, 65536} {
		b := NewBase(int(max))
		count, last := b.Count(max)
		wantCount, wantLast := naiveCount(max)
		if count != wantCount {
			t.Errorf("Count(%d) = %d, want %d", max, count, wantCount)
		}
		if last != wantLast {
			t.Errorf("Count(%d) last = %d, want %d", max, last, wantLast)
		}
	}
}

func TestSliceCountAgainstNaive(t *testing.T) {
	b := NewBase(4096)

	tests := []struct {
		start  uint64
		values int
	}{
		{1024, 1024},
		{1024, 1000}, // 16 の倍数でない端数
		{2048, 2048},
		{4096, 4096},
		{65536, 4096},
		{1048576, 1024},
	}

	for _, tt := range tests {
		count, last := b.SliceCount(tt.start, tt.values)
		wantCount, wantLast := naiveRange(tt.start, tt.values)
		if count != wantCount {
			t.Errorf("SliceCount(%d, %d) = %d, want %d", tt.start, tt.values, count, wantCount)
		}
		if last != wantLast {
			t.Errorf("SliceCount(%d, %d) last = %d, want %d", tt.start, tt.values, last, wantLast)
		}
	}
}

// TestSlicedEqualsWhole は基底+スライス分割の合計が一括計算と一致することを確認する
func TestSlicedEqualsWhole(t *testing.T) {
	const baseLimit = 1024
	const max = 16384

	b := NewBase(baseLimit)
	count, last := b.Count(max)
	tally := NewTally(count, last)

	for start := uint64(baseLimit); start < max; start += baseLimit {
		values := baseLimit
		if start+uint64(values) > max {
			values = int(max - start)
		}
		n, l := b.SliceCount(start, values)
		tally.Add(n, l)
	}

	whole := NewBase(max)
	wantCount, wantLast := whole.Count(max)

	if tally.Primes() != wantCount {
		t.Errorf("sliced total = %d, want %d", tally.Primes(), wantCount)
	}
	if tally.Last() != wantLast {
		t.Errorf("sliced last = %d, want %d", tally.Last(), wantLast)
	}
}

func TestSliceCountTinyRange(t *testing.T) {
	b := NewBase(4096)

	// 1 バイト分だけの最小スライス
	count, last := b.SliceCount(32768, 16)
	wantCount, wantLast := naiveRange(32768, 16)
	if count != wantCount || last != wantLast {
		t.Errorf("SliceCount(32768, 16) = (%d, %d), want (%d, %d)", count, last, wantCount, wantLast)
	}
}
