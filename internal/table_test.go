package internal

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Lesson", "Sentences"},
		[][]string{{"greetings", "2"}, {"cafe"}},
		1,
	)

	for _, want := range []string{"LESSON", "SENTENCES", "greetings", "cafe", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 6 {
		t.Errorf("table has %d lines, want 6:\n%s", len(lines), out)
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	if out := RenderTable(nil, [][]string{{"x"}}); out != "" {
		t.Errorf("RenderTable(nil) = %q, want empty", out)
	}
}
