package align

import (
	"math"
	"testing"

	"github.com/chirp-app/chirp-ai/internal/transcribe"
)

func TestAlignToWords_ProportionalAllocation(t *testing.T) {
	phonemes := ExpandPhonemes("hi bob") // 8 phonemes
	words := []transcribe.WordTimestamp{
		{Word: "hi", Start: 0.0, End: 0.5, Confidence: 0.9},
		{Word: "bob", Start: 0.6, End: 1.2, Confidence: 0.8},
	}

	aligned := AlignToWords(phonemes, words, "hi bob", 1.5)

	if len(aligned) != 8 {
		t.Fatalf("aligned %d phonemes, want 8", len(aligned))
	}

	// First word gets 4 phonemes at its confidence.
	for i := 0; i < 4; i++ {
		if aligned[i].Confidence != 0.9 {
			t.Errorf("phoneme %d confidence = %v, want 0.9", i, aligned[i].Confidence)
		}
	}
	for i := 4; i < 8; i++ {
		if aligned[i].Confidence != 0.8 {
			t.Errorf("phoneme %d confidence = %v, want 0.8", i, aligned[i].Confidence)
		}
	}

	if aligned[0].Start != 0.0 {
		t.Errorf("first start = %v, want 0.0", aligned[0].Start)
	}
	if math.Abs(aligned[7].End-1.2) > 1e-9 {
		t.Errorf("last end = %v, want 1.2", aligned[7].End)
	}
}

func TestAlignToWords_LeftoversAppended(t *testing.T) {
	phonemes := ExpandPhonemes("abc def ghi") // 13 phonemes
	words := []transcribe.WordTimestamp{
		{Word: "abc", Start: 0.0, End: 0.4, Confidence: 0.7},
	}

	aligned := AlignToWords(phonemes, words, "abc def ghi", 2.0)

	if len(aligned) != 13 {
		t.Fatalf("aligned %d phonemes, want 13", len(aligned))
	}

	// perWord caps the single word at 4 phonemes; the other 9 trail in
	// fixed 100ms slices at the even-distribution confidence.
	for i := 4; i < 13; i++ {
		p := aligned[i]
		if p.Confidence != 0.5 {
			t.Errorf("leftover %d confidence = %v, want 0.5", i, p.Confidence)
		}
		if math.Abs(p.End-p.Start-0.1) > 1e-9 {
			t.Errorf("leftover %d span = %v, want 0.1", i, p.End-p.Start)
		}
	}
	if aligned[4].Start != aligned[3].End {
		t.Errorf("first leftover starts at %v, want %v", aligned[4].Start, aligned[3].End)
	}
}

func TestAlignToWords_ZeroSpanWordGetsHalfSecond(t *testing.T) {
	phonemes := []string{"sil", "hh", "ih", "sil"}
	words := []transcribe.WordTimestamp{
		{Word: "hi", Start: 1.0, End: 1.0, Confidence: 0.6},
	}

	aligned := AlignToWords(phonemes, words, "hi", 2.0)

	if len(aligned) != 4 {
		t.Fatalf("aligned %d phonemes, want 4", len(aligned))
	}
	if math.Abs(aligned[3].End-1.5) > 1e-9 {
		t.Errorf("last end = %v, want 1.5", aligned[3].End)
	}
}

func TestAlignToWords_NoWordsFallsBackToEven(t *testing.T) {
	phonemes := []string{"sil", "hh", "ih", "sil"}

	aligned := AlignToWords(phonemes, nil, "hi", 2.0)

	if len(aligned) != 4 {
		t.Fatalf("aligned %d phonemes, want 4", len(aligned))
	}
	for i, p := range aligned {
		if p.Confidence != 0.5 {
			t.Errorf("phoneme %d confidence = %v, want 0.5", i, p.Confidence)
		}
		if math.Abs(p.End-p.Start-0.5) > 1e-9 {
			t.Errorf("phoneme %d span = %v, want 0.5", i, p.End-p.Start)
		}
	}
}

func TestDistributeEvenly_PartitionsDuration(t *testing.T) {
	phonemes := []string{"a", "b", "c", "d", "e"}
	aligned := DistributeEvenly(phonemes, 2.5)

	if len(aligned) != 5 {
		t.Fatalf("aligned %d phonemes, want 5", len(aligned))
	}
	if aligned[0].Start != 0.0 {
		t.Errorf("first start = %v, want 0.0", aligned[0].Start)
	}
	if math.Abs(aligned[4].End-2.5) > 1e-9 {
		t.Errorf("last end = %v, want 2.5", aligned[4].End)
	}
	for i := 1; i < len(aligned); i++ {
		if math.Abs(aligned[i].Start-aligned[i-1].End) > 1e-9 {
			t.Errorf("gap between %d and %d: %v != %v", i-1, i, aligned[i-1].End, aligned[i].Start)
		}
	}
}

func TestDistributeEvenly_Empty(t *testing.T) {
	aligned := DistributeEvenly(nil, 1.0)
	if len(aligned) != 0 {
		t.Errorf("aligned %d phonemes, want 0", len(aligned))
	}
}
