package core

import "testing"

func TestSeededRandom_Range(t *testing.T) {
	r := NewSeededRandom(42)
	for i := 0; i < 1000; i++ {
		v := r.Uniform(40, 101)
		if v < 40 || v >= 101 {
			t.Fatalf("Uniform(40, 101) returned %d, outside range", v)
		}
	}
}

func TestSeededRandom_Deterministic(t *testing.T) {
	a := NewSeededRandom(7)
	b := NewSeededRandom(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Uniform(0, 256), b.Uniform(0, 256); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSeededRandom_EmptyRange(t *testing.T) {
	r := NewSeededRandom(1)
	if v := r.Uniform(5, 5); v != 5 {
		t.Errorf("Uniform(5, 5) = %d, expected 5", v)
	}
	if v := r.Uniform(9, 3); v != 9 {
		t.Errorf("Uniform(9, 3) = %d, expected 9", v)
	}
}

func TestSeededRandom_EntropySeed(t *testing.T) {
	r := NewSeededRandom(0)
	if r.Seed() == 0 {
		t.Error("expected a non-zero seed drawn from entropy")
	}
}

func TestScriptedRandom(t *testing.T) {
	r := NewScriptedRandom(3, 10, -4)

	if v := r.Uniform(0, 5); v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
	if v := r.Uniform(100, 105); v != 100 {
		t.Errorf("expected 100 (10 folded into width 5), got %d", v)
	}
	if v := r.Uniform(0, 10); v != 4 {
		t.Errorf("expected 4 for negative raw value, got %d", v)
	}
	// wraps around to the first value
	if v := r.Uniform(0, 256); v != 3 {
		t.Errorf("expected script to wrap to 3, got %d", v)
	}
	if r.Draws() != 4 {
		t.Errorf("expected 4 draws, got %d", r.Draws())
	}
}

func TestCoinFlip(t *testing.T) {
	if CoinFlip(NewScriptedRandom(0)) {
		t.Error("expected raw 0 to be tails")
	}
	if !CoinFlip(NewScriptedRandom(1)) {
		t.Error("expected raw 1 to be heads")
	}
}

func TestRecordingOutput(t *testing.T) {
	var out RecordingOutput
	if out.Level() != 0 {
		t.Errorf("expected level 0 with no writes, got %d", out.Level())
	}

	out.SetIntensity(120)
	out.SetBinary(true)
	if out.Level() != 255 {
		t.Errorf("expected level 255 after SetBinary(true), got %d", out.Level())
	}
	out.SetBinary(false)
	if len(out.Writes) != 3 || !out.Writes[2].Binary || out.Writes[2].Value != 0 {
		t.Errorf("unexpected writes: %+v", out.Writes)
	}

	out.Reset()
	if len(out.Writes) != 0 {
		t.Errorf("expected no writes after Reset, got %d", len(out.Writes))
	}
}
