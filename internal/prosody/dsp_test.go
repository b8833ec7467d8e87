package prosody

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFrameCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{100, 1},
		{frameLength, 1},
		{frameLength + hopLength, 2},
		{frameLength + 10*hopLength, 11},
	}
	for _, tt := range tests {
		if got := frameCount(tt.n); got != tt.want {
			t.Errorf("frameCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestAutocorrelate_PeriodicSignal(t *testing.T) {
	// 200Hz sine at 16kHz: period is 80 samples.
	frame := make([]float64, frameLength)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * 200 * float64(i) / 16000)
	}

	atPeriod := autocorrelate(frame, 80)
	if atPeriod < 0.9 {
		t.Errorf("autocorrelation at period = %v, want > 0.9", atPeriod)
	}

	offPeriod := autocorrelate(frame, 40)
	if offPeriod >= atPeriod {
		t.Errorf("autocorrelation at half period (%v) should be below period peak (%v)", offPeriod, atPeriod)
	}
}

func TestAutocorrelate_Degenerate(t *testing.T) {
	frame := make([]float64, 100)
	if got := autocorrelate(frame, 10); got != 0 {
		t.Errorf("all-zero frame: got %v, want 0", got)
	}
	if got := autocorrelate([]float64{1, 2, 3}, 0); got != 0 {
		t.Errorf("zero lag: got %v, want 0", got)
	}
	if got := autocorrelate([]float64{1, 2, 3}, 3); got != 0 {
		t.Errorf("lag beyond frame: got %v, want 0", got)
	}
}

func TestFFT_SingleTone(t *testing.T) {
	// Bin 4 of a 64-point transform: frequency 4/64 cycles per sample.
	n := 64
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	spec := fft(x)
	if len(spec) != n {
		t.Fatalf("fft length = %d, want %d", len(spec), n)
	}

	// Energy concentrates in bin 4 (and its mirror).
	peak := cmplx.Abs(spec[4])
	if math.Abs(peak-float64(n)/2) > 1e-6 {
		t.Errorf("bin 4 magnitude = %v, want %v", peak, float64(n)/2)
	}
	for k := 0; k <= n/2; k++ {
		if k == 4 {
			continue
		}
		if mag := cmplx.Abs(spec[k]); mag > 1e-6 {
			t.Errorf("bin %d magnitude = %v, want ~0", k, mag)
		}
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{0, 10}
	if got := percentile(values, 30); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("percentile(30) = %v, want 3.0", got)
	}
	if got := percentile(values, 0); got != 0 {
		t.Errorf("percentile(0) = %v, want 0", got)
	}
	if got := percentile(values, 100); got != 10 {
		t.Errorf("percentile(100) = %v, want 10", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile of empty = %v, want 0", got)
	}
}

func TestMeanVariance(t *testing.T) {
	values := []float64{2, 4, 6}
	if got := mean(values); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("mean = %v, want 4.0", got)
	}
	if got := variance(values); math.Abs(got-8.0/3.0) > 1e-9 {
		t.Errorf("variance = %v, want %v", got, 8.0/3.0)
	}
	if got := mean(nil); got != 0 {
		t.Errorf("mean of empty = %v, want 0", got)
	}
}

func TestDetectOnsets_SharpRises(t *testing.T) {
	rms := make([]float64, 100)
	rms[10] = 1.0
	rms[50] = 1.0

	onsets := detectOnsets(rms, 16000)

	if len(onsets) != 2 {
		t.Fatalf("detected %d onsets, want 2", len(onsets))
	}
	hop := float64(hopLength) / 16000.0
	if math.Abs(onsets[0]-10*hop) > 1e-9 {
		t.Errorf("onset 0 at %v, want %v", onsets[0], 10*hop)
	}
	if math.Abs(onsets[1]-50*hop) > 1e-9 {
		t.Errorf("onset 1 at %v, want %v", onsets[1], 50*hop)
	}
}

func TestDetectOnsets_FlatSignal(t *testing.T) {
	rms := make([]float64, 50)
	for i := range rms {
		rms[i] = 0.5
	}
	if onsets := detectOnsets(rms, 16000); len(onsets) != 0 {
		t.Errorf("flat signal produced %d onsets, want 0", len(onsets))
	}
}
