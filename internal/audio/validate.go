package audio

import (
	"fmt"
	"strings"
)

// NormalizeText collapses runs of whitespace (including non-breaking
// spaces) and rejects text with nothing left to speak
func NormalizeText(text string) (string, error) {
	collapsed := strings.Join(strings.Fields(strings.ReplaceAll(text, "\u00a0", " ")), " ")
	if collapsed == "" {
		return "", fmt.Errorf("text cannot be empty")
	}
	return collapsed, nil
}
