package tanks

import (
	"math/rand"
	"testing"
)

func TestPickWeightedSingleBucket(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if got := pickWeighted(rng, []float64{1, 0, 0}); got != 0 {
			t.Fatalf("pick = %d, want 0", got)
		}
		if got := pickWeighted(rng, []float64{0, 0, 2}); got != 2 {
			t.Fatalf("pick = %d, want 2", got)
		}
	}
}

func TestPickWeightedDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var counts [2]int
	for i := 0; i < 10000; i++ {
		counts[pickWeighted(rng, []float64{3, 1})]++
	}
	// expect roughly 7500/2500
	if counts[0] < 7000 || counts[0] > 8000 {
		t.Errorf("counts = %v, want about 3:1", counts)
	}
}

func TestChanceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		if chance(rng, 0) {
			t.Fatal("chance(0) was true")
		}
		if !chance(rng, 1) {
			t.Fatal("chance(1) was false")
		}
	}
}
