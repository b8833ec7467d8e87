package prosody

import (
	"math"
	"math/cmplx"
	"sort"
)

// Analysis frame geometry, matching the conventional 2048/512 layout for
// 16kHz speech.
const (
	frameLength = 2048
	hopLength   = 512
)

// frameCount returns how many hops fit in n samples. Short signals still
// produce one (zero-padded) frame.
func frameCount(n int) int {
	if n <= 0 {
		return 0
	}
	if n < frameLength {
		return 1
	}
	return 1 + (n-frameLength)/hopLength
}

// frameAt returns the i-th analysis frame, zero-padded at the signal edge.
func frameAt(y []float64, i int) []float64 {
	start := i * hopLength
	frame := make([]float64, frameLength)
	copy(frame, y[start:min(start+frameLength, len(y))])
	return frame
}

// frameRMS computes root-mean-square energy per frame.
func frameRMS(y []float64) []float64 {
	n := frameCount(len(y))
	rms := make([]float64, n)
	for i := 0; i < n; i++ {
		frame := frameAt(y, i)
		sum := 0.0
		for _, v := range frame {
			sum += v * v
		}
		rms[i] = math.Sqrt(sum / float64(len(frame)))
	}
	return rms
}

// frameZCR computes the zero-crossing rate per frame.
func frameZCR(y []float64) []float64 {
	n := frameCount(len(y))
	zcr := make([]float64, n)
	for i := 0; i < n; i++ {
		frame := frameAt(y, i)
		crossings := 0
		for j := 1; j < len(frame); j++ {
			if (frame[j-1] >= 0) != (frame[j] >= 0) {
				crossings++
			}
		}
		zcr[i] = float64(crossings) / float64(len(frame))
	}
	return zcr
}

// spectralCentroid computes the magnitude-weighted mean frequency of one
// frame in Hz. Returns 0 for an all-zero frame.
func spectralCentroid(frame []float64, sampleRate int) float64 {
	spec := fft(frame)
	half := len(spec) / 2

	var weighted, total float64
	binHz := float64(sampleRate) / float64(len(spec))
	for k := 0; k <= half; k++ {
		mag := cmplx.Abs(spec[k])
		weighted += float64(k) * binHz * mag
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// fft is an in-place iterative radix-2 Cooley-Tukey transform. The input is
// zero-padded to the next power of two.
func fft(x []float64) []complex128 {
	n := 1
	for n < len(x) {
		n <<= 1
	}
	a := make([]complex128, n)
	for i, v := range x {
		a[i] = complex(v, 0)
	}

	// Bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		ang := -2 * math.Pi / float64(length)
		wl := cmplx.Rect(1, ang)
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := a[i+j]
				v := a[i+j+length/2] * w
				a[i+j] = u + v
				a[i+j+length/2] = u - v
				w *= wl
			}
		}
	}
	return a
}

// autocorrelate computes the normalized autocorrelation of a frame at the
// given lag. Normalization is against the zero-lag energy, so a perfectly
// periodic signal scores close to 1.
func autocorrelate(frame []float64, lag int) float64 {
	if lag <= 0 || lag >= len(frame) {
		return 0
	}
	var num, energy float64
	for i := 0; i < len(frame); i++ {
		energy += frame[i] * frame[i]
	}
	if energy == 0 {
		return 0
	}
	for i := 0; i < len(frame)-lag; i++ {
		num += frame[i] * frame[i+lag]
	}
	return num / energy
}

// percentile returns the p-th percentile (0-100) of values using
// nearest-rank on a sorted copy.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}
