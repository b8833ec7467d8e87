package align

import (
	"reflect"
	"testing"
)

func TestExpandPhonemes_TwoWords(t *testing.T) {
	got := ExpandPhonemes("hi bob")
	want := []string{"sil", "hh", "ih", "sil", "b", "oh", "b", "sil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPhonemes(%q) = %v, want %v", "hi bob", got, want)
	}
}

func TestExpandPhonemes_Empty(t *testing.T) {
	got := ExpandPhonemes("")
	want := []string{"sil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPhonemes(\"\") = %v, want %v", got, want)
	}
}

func TestExpandPhonemes_DropsNonAlpha(t *testing.T) {
	got := ExpandPhonemes("hi!")
	want := []string{"sil", "hh", "ih", "sil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPhonemes(%q) = %v, want %v", "hi!", got, want)
	}
}

func TestExpandPhonemes_AccentedLettersMapToThemselves(t *testing.T) {
	got := ExpandPhonemes("café")
	want := []string{"sil", "k", "aa", "f", "é", "sil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPhonemes(%q) = %v, want %v", "café", got, want)
	}
}

func TestExpandPhonemes_CaseInsensitive(t *testing.T) {
	upper := ExpandPhonemes("QUIZ")
	lower := ExpandPhonemes("quiz")
	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case mismatch: %v vs %v", upper, lower)
	}
	want := []string{"sil", "k", "uh", "ih", "z", "sil"}
	if !reflect.DeepEqual(lower, want) {
		t.Errorf("ExpandPhonemes(%q) = %v, want %v", "quiz", lower, want)
	}
}
