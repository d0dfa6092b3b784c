// Package sieve はエラトステネスの篩による素数計算を提供する。
//
// 2 以外の偶数は素数になり得ないため、奇数のみをビットマップに格納する。
// これにより 1 バイトで 16 個の値を表現できる。値 v（奇数）に対応する
// ビットは bits[v>>4] の (v>>1)&7 ビット目で、1 が合成数を意味する。
//
// メモリが制約になる大きな N に対しては、まず sqrt(N) までを覆う基底表
// （Base）を作り、残りの区間を基底表と同じ大きさのスライスに分割して
// SliceCount で処理する。スライスは並列に計算でき、結果の集約には
// Tally を使う。
//
// # 使用例
//
//	base := sieve.NewBase(1 << 20)
//	count, last := base.Count(1 << 20)
//
//	// [1<<20, 1<<21) の素数を数える
//	n, l := base.SliceCount(1<<20, 1<<20)
//
// スライスの開始値は 16 の倍数でなければならない。
package sieve
