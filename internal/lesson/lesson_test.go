package lesson

import "testing"

func TestSentenceNumberAndAudioPath(t *testing.T) {
	tests := []struct {
		ordinal   int
		wantNum   string
		wantAudio string
	}{
		{1, "01", "audio/greetings/01.mp3"},
		{9, "09", "audio/greetings/09.mp3"},
		{10, "10", "audio/greetings/10.mp3"},
		{100, "100", "audio/greetings/100.mp3"},
	}

	for _, tt := range tests {
		s := Sentence{Ordinal: tt.ordinal}
		if got := s.Number(); got != tt.wantNum {
			t.Errorf("Number() = %q, want %q", got, tt.wantNum)
		}
		if got := s.AudioPath("greetings"); got != tt.wantAudio {
			t.Errorf("AudioPath() = %q, want %q", got, tt.wantAudio)
		}
	}
}

func TestLessonSubtitleAndSummary(t *testing.T) {
	l := &Lesson{ID: "greetings", Description: "Basic greetings"}
	if l.Subtitle() != "greetings" {
		t.Errorf("Expected id as subtitle, got %q", l.Subtitle())
	}
	if l.Summary() != "Basic greetings" {
		t.Errorf("Expected French description, got %q", l.Summary())
	}

	l.TitleZh = "问候"
	l.DescriptionZh = "日常问候语"
	if l.Subtitle() != "问候" {
		t.Errorf("Expected Chinese title, got %q", l.Subtitle())
	}
	if l.Summary() != "日常问候语" {
		t.Errorf("Expected Chinese description, got %q", l.Summary())
	}
}
