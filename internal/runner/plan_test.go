package runner

import (
	"errors"
	"testing"
)

func TestNewPlanErrors(t *testing.T) {
	if _, err := NewPlan(9); !errors.Is(err, ErrMaxTooSmall) {
		t.Errorf("expected ErrMaxTooSmall, got %v", err)
	}
	if _, err := NewPlan(MaxMax + 1); !errors.Is(err, ErrMaxTooLarge) {
		t.Errorf("expected ErrMaxTooLarge, got %v", err)
	}
	if _, err := NewPlan(MaxMax); err != nil {
		t.Errorf("MaxMax should be accepted, got %v", err)
	}
	if _, err := NewPlan(MinMax); err != nil {
		t.Errorf("MinMax should be accepted, got %v", err)
	}
}

func TestNewPlanBaseOnly(t *testing.T) {
	plan, err := NewPlan(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BaseLimit != 16 {
		t.Errorf("expected base limit 16, got %d", plan.BaseLimit)
	}
	if plan.Slices != 0 {
		t.Errorf("expected 0 slices, got %d", plan.Slices)
	}

	plan, err = NewPlan(1 << 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BaseLimit != 1<<20 {
		t.Errorf("expected base limit %d, got %d", 1<<20, plan.BaseLimit)
	}
	if plan.Slices != 0 {
		t.Errorf("expected 0 slices, got %d", plan.Slices)
	}
}

func TestNewPlanSliced(t *testing.T) {
	plan, err := NewPlan(1<<20 + 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BaseLimit != 1<<20 {
		t.Errorf("expected base limit %d, got %d", 1<<20, plan.BaseLimit)
	}
	if plan.Slices != 1 {
		t.Errorf("expected 1 slice, got %d", plan.Slices)
	}

	plan, err = NewPlan(1_000_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BaseLimit != 1<<20 {
		t.Errorf("expected base limit %d, got %d", 1<<20, plan.BaseLimit)
	}
	if plan.Slices != 953 {
		t.Errorf("expected 953 slices, got %d", plan.Slices)
	}
}

func TestNewPlanSqrtStrategy(t *testing.T) {
	plan, err := NewPlan(2_000_000_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.BaseLimit%16 != 0 {
		t.Errorf("base limit must be a multiple of 16, got %d", plan.BaseLimit)
	}
	// 基底表は sqrt(max) 以上を覆うこと
	limit := uint64(plan.BaseLimit)
	if limit*limit < plan.Max {
		t.Errorf("base limit %d does not cover sqrt(%d)", plan.BaseLimit, plan.Max)
	}
	if plan.Slices == 0 {
		t.Error("expected sliced plan")
	}
}

// TestPlanCoverage は基底とスライスの区間が隙間も重なりもなく max を覆うことを確認する
func TestPlanCoverage(t *testing.T) {
	for _, max := range []uint64{1 << 20, 1<<20 + 1, 2_000_000, 100_000_000, 1_000_000_000} {
		plan, err := NewPlan(max)
		if err != nil {
			t.Fatalf("NewPlan(%d): %v", max, err)
		}

		if plan.Slices == 0 {
			if uint64(plan.BaseLimit) < max {
				t.Errorf("max=%d: base-only plan does not cover max", max)
			}
			continue
		}

		covered := uint64(plan.BaseLimit)
		for slice := 1; slice <= plan.Slices; slice++ {
			if plan.SliceStart(slice) != covered {
				t.Errorf("max=%d: slice %d starts at %d, want %d", max, slice, plan.SliceStart(slice), covered)
			}
			values := plan.SliceValues(slice)
			if values <= 0 {
				t.Errorf("max=%d: slice %d has %d values", max, slice, values)
			}
			if plan.SliceStart(slice)%16 != 0 {
				t.Errorf("max=%d: slice %d start %d not a multiple of 16", max, slice, plan.SliceStart(slice))
			}
			covered += uint64(values)
		}
		if covered != max {
			t.Errorf("max=%d: plan covers %d", max, covered)
		}
	}
}
