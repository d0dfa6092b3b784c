package sieve

import "math"

// Base は基底素数表
// limit 未満の奇数の素数性を奇数のみのビットマップで保持する
type Base struct {
	limit int
	bits  []byte // 1 = 合成数
}

// NewBase は limit までの基底素数表を構築する
// limit は 16 の倍数に切り上げられる
func NewBase(limit int) *Base {
	limit += -limit & 0xf
	b := &Base{
		limit: limit,
		bits:  make([]byte, limit/16),
	}

	b.bits[0] |= 1 // 1 は素数ではない

	for t := 3; t*t < limit; t += 2 {
		if b.bits[t>>4]&(1<<((t>>1)&7)) == 0 {
			for c := t * t; c < limit; c += t * 2 {
				b.bits[c>>4] |= 1 << ((c >> 1) & 7)
			}
		}
	}

	return b
}

// Limit は表が覆う上限値（16 の倍数）を返す
func (b *Base) Limit() int {
	return b.limit
}

// Count は min(limit, max) 未満の素数を数え、個数と最後の素数を返す
func (b *Base) Count(max uint64) (count uint64, last uint64) {
	count = 1 // 2 はここで計上する
	last = 2

	for t := 3; t < b.limit && uint64(t) < max; t += 2 {
		if b.bits[t>>4]&(1<<((t>>1)&7)) == 0 {
			last = uint64(t)
			count++
		}
	}

	return count, last
}

// SliceCount は [start, start+values) の区間の素数を数え、
// 個数と区間内の最後の素数（なければ 0）を返す
//
// start は 16 の倍数であること。また基底表は sqrt(start+values) 以上を
// 覆っていなければならない。values は内部で 16 の倍数に切り上げて篩い、
// 数える段階で余分を無視する
//
// 32 ビット演算を優先した元の実装と同じく、区間の幅は int で扱う
func (b *Base) SliceCount(start uint64, values int) (count uint64, last uint64) {
	sliceCount := values + (-values & 0xf)
	limit := int(math.Ceil(math.Sqrt(float64(start) + float64(sliceCount))))
	bits := make([]byte, sliceCount/16)

	for t := 3; t < limit; t += 2 {
		if b.bits[t>>4]&(1<<((t>>1)&7)) == 0 {
			// start 以上で最小の t の奇数倍からマークを始める
			c := ((start+uint64(t)-1)/(uint64(t)*2)*2+1)*uint64(t) - start
			for ; c < uint64(sliceCount); c += uint64(t) * 2 {
				bits[c>>4] |= 1 << ((c >> 1) & 7)
			}
		}
	}

	for t := 1; t < values; t += 2 {
		if bits[t>>4]&(1<<((t>>1)&7)) == 0 {
			last = start + uint64(t)
			count++
		}
	}

	return count, last
}
