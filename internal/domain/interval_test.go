package domain

import (
	"math/rand"
	"testing"
)

func TestNewIntervalRejectsZeroLength(t *testing.T) {
	if _, ok := NewPlainInterval(100, 100); ok {
		t.Fatalf("NewPlainInterval(100, 100) succeeded, want failure")
	}
	if _, ok := NewPlainInterval(100, 99); ok {
		t.Fatalf("NewPlainInterval(100, 99) succeeded, want failure")
	}
}

func TestIntersectDisjointChainsIsEmpty(t *testing.T) {
	a, _ := NewPlainInterval(0, 10)
	b, _ := NewPlainInterval(20, 30)
	chainA := ChainFromInterval(a)
	chainB := ChainFromInterval(b)

	got := Intersect(chainA, chainB)
	if !got.IsEmpty() {
		t.Fatalf("Intersect of disjoint chains = %v, want empty", got.Intervals())
	}
}

func TestIntersectOverlapping(t *testing.T) {
	a, _ := NewPlainInterval(0, 10)
	b, _ := NewPlainInterval(5, 15)
	got := Intersect(ChainFromInterval(a), ChainFromInterval(b))

	ivs := got.Intervals()
	if len(ivs) != 1 {
		t.Fatalf("got %d intervals, want 1", len(ivs))
	}
	if ivs[0].Start() != 5 || ivs[0].End() != 10 {
		t.Fatalf("got [%d, %d), want [5, 10)", ivs[0].Start(), ivs[0].End())
	}
}

func TestIntersectMultiIntervalChains(t *testing.T) {
	a1, _ := NewPlainInterval(0, 10)
	a2, _ := NewPlainInterval(20, 30)
	b1, _ := NewPlainInterval(5, 25)

	chainA := ChainFromIntervals([]Interval{a1, a2})
	chainB := ChainFromInterval(b1)

	got := Intersect(chainA, chainB)
	ivs := got.Intervals()
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want 2: %v", len(ivs), ivs)
	}
	if ivs[0].Start() != 5 || ivs[0].End() != 10 {
		t.Errorf("first interval = [%d, %d), want [5, 10)", ivs[0].Start(), ivs[0].End())
	}
	if ivs[1].Start() != 20 || ivs[1].End() != 25 {
		t.Errorf("second interval = [%d, %d), want [20, 25)", ivs[1].Start(), ivs[1].End())
	}
}

func TestGapsFullyCoveredIsEmpty(t *testing.T) {
	within, _ := NewPlainInterval(0, 100)
	covering, _ := NewPlainInterval(0, 100)
	chain := ChainFromInterval(covering)

	got := Gaps(chain, within)
	if !got.IsEmpty() {
		t.Fatalf("Gaps of fully-covered interval = %v, want empty", got.Intervals())
	}
}

func TestGapsBeforeBetweenAfter(t *testing.T) {
	within, _ := NewPlainInterval(0, 100)
	iv1, _ := NewPlainInterval(20, 30)
	iv2, _ := NewPlainInterval(50, 60)
	chain := ChainFromIntervals([]Interval{iv1, iv2})

	got := Gaps(chain, within)
	ivs := got.Intervals()
	if len(ivs) != 3 {
		t.Fatalf("got %d gaps, want 3: %v", len(ivs), ivs)
	}

	want := [][2]Time{{0, 20}, {30, 50}, {60, 100}}
	for i, w := range want {
		if ivs[i].Start() != w[0] || ivs[i].End() != w[1] {
			t.Errorf("gap %d = [%d, %d), want [%d, %d)", i, ivs[i].Start(), ivs[i].End(), w[0], w[1])
		}
	}

	if ivs[0].Data().Before != nil {
		t.Errorf("first gap has a Before edge, want none")
	}
	if ivs[2].Data().After != nil {
		t.Errorf("last gap has an After edge, want none")
	}
}

func TestContainedIn(t *testing.T) {
	within, _ := NewPlainInterval(0, 100)
	inside, _ := NewPlainInterval(10, 20)
	outside, _ := NewPlainInterval(90, 110)

	if !ContainedIn(ChainFromInterval(inside), within) {
		t.Errorf("inside interval reported not contained")
	}
	if ContainedIn(ChainFromInterval(outside), within) {
		t.Errorf("outside interval reported contained")
	}
	if !ContainedIn(NewChain[Empty](), within) {
		t.Errorf("empty chain reported not contained")
	}
}

func TestTryAddRejectsOverlap(t *testing.T) {
	chain := NewChain[Empty]()
	iv1, _ := NewPlainInterval(0, 10)
	iv2, _ := NewPlainInterval(5, 15)
	iv3, _ := NewPlainInterval(10, 20)

	if !chain.TryAdd(iv1) {
		t.Fatalf("TryAdd of first interval failed")
	}
	if chain.TryAdd(iv2) {
		t.Fatalf("TryAdd of overlapping interval succeeded")
	}
	if !chain.TryAdd(iv3) {
		t.Fatalf("TryAdd of adjacent, non-overlapping interval failed")
	}

	ivs := chain.Intervals()
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want 2", len(ivs))
	}
}

func TestIntersectAllEmptySequenceIsUniversal(t *testing.T) {
	got := IntersectAll[Empty](nil)
	ivs := got.Intervals()
	if len(ivs) != 1 {
		t.Fatalf("got %d intervals, want 1 (the universal interval)", len(ivs))
	}
	if ivs[0].Start() != minTime || ivs[0].End() != maxTime {
		t.Fatalf("universal interval = [%d, %d)", ivs[0].Start(), ivs[0].End())
	}
}

func TestRandomTimeStaysInBounds(t *testing.T) {
	iv, _ := NewPlainInterval(100, 200)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		got := RandomTime(iv, rng)
		if got < 100 || got >= 200 {
			t.Fatalf("RandomTime returned %d, want in [100, 200)", got)
		}
	}
}
