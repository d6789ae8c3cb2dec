package text

import "testing"

func TestNormalize_LineBreaks(t *testing.T) {
	got := Normalize("첫 줄\r\n둘째 줄\r셋째 줄")
	want := "첫 줄\n둘째 줄\n셋째 줄"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_HorizontalWhitespace(t *testing.T) {
	got := Normalize("만   19세 \t 이상")
	want := "만 19세 이상"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_BlankLineCollapse(t *testing.T) {
	got := Normalize("지원대상\n\n\n\n지원내용")
	want := "지원대상\n\n지원내용"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_TrimsAndEmpty(t *testing.T) {
	if got := Normalize("  \n  "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := Normalize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCleanField_MissingSentinels(t *testing.T) {
	for _, input := range []string{"", "  ", "nan", "NaN", "__MISSING__"} {
		if got := CleanField(input); got != "" {
			t.Errorf("CleanField(%q): expected empty, got %q", input, got)
		}
	}
}

func TestTruncate_Runes(t *testing.T) {
	if got := Truncate("가나다라마", 3) + ""; got != "가나다" {
		t.Errorf("expected 가나다, got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
