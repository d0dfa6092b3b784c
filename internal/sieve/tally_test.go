package sieve

import "testing"

func TestTallyAdd(t *testing.T) {
	tally := NewTally(4, 7)

	tally.Add(3, 29)
	tally.Add(2, 13) // 小さい last は採用されない

	if tally.Primes() != 9 {
		t.Errorf("expected 9 primes, got %d", tally.Primes())
	}
	if tally.Last() != 29 {
		t.Errorf("expected last 29, got %d", tally.Last())
	}
}

func TestTallyEmptySlice(t *testing.T) {
	tally := NewTally(10, 97)

	// 素数のないスライスは (0, 0) を報告する
	tally.Add(0, 0)

	if tally.Primes() != 10 {
		t.Errorf("expected 10 primes, got %d", tally.Primes())
	}
	if tally.Last() != 97 {
		t.Errorf("expected last 97, got %d", tally.Last())
	}
}

func TestTallyZeroInitial(t *testing.T) {
	tally := NewTally(0, 0)

	tally.Add(5, 31)

	if tally.Primes() != 5 || tally.Last() != 31 {
		t.Errorf("expected (5, 31), got (%d, %d)", tally.Primes(), tally.Last())
	}
}
