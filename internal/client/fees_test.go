package client

import (
	"testing"
)

func TestPriorityFeeLamports(t *testing.T) {
	t.Parallel()

	got, err := PriorityFeeLamports(150_000, 56_000)
	if err != nil {
		t.Fatalf("PriorityFeeLamports: %v", err)
	}
	if got != 8400 {
		t.Fatalf("got=%d want=8400", got)
	}

	got, err = PriorityFeeLamports(1, 1)
	if err != nil {
		t.Fatalf("PriorityFeeLamports: %v", err)
	}
	if got != 1 {
		t.Fatalf("got=%d want=1", got)
	}

	if _, err := PriorityFeeLamports(^uint32(0), ^uint64(0)); err == nil {
		t.Fatalf("expected overflow")
	}
}

func TestEstimateFee(t *testing.T) {
	t.Parallel()

	est, err := EstimateFee(1, 400_000, 100_000)
	if err != nil {
		t.Fatalf("EstimateFee: %v", err)
	}
	if est.BaseFeeLamports != 5000 || est.PriorityLamports != 40_000 || est.TotalLamports != 45_000 {
		t.Fatalf("unexpected estimate: %s", est)
	}

	if _, err := EstimateFee(^uint64(0), 0, 0); err == nil {
		t.Fatalf("expected overflow")
	}
}
