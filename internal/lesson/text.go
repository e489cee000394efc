package lesson

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// decodeText reads a plain phrase list into the generic lesson record.
// Supported line formats:
//   - French only: "Bonjour !"
//   - With translation: "Bonjour ! = 你好！"
//
// Blank lines and lines starting with "#" are ignored. The lesson id and
// title default to the file name.
func decodeText(content []byte) (map[string]interface{}, error) {
	sentences := []interface{}{}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fr, zh := line, ""
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			fr = strings.TrimSpace(parts[0])
			zh = strings.TrimSpace(parts[1])
		}
		if fr == "" {
			return nil, fmt.Errorf("line %d has a translation but no French text", lineNo)
		}

		sentences = append(sentences, map[string]interface{}{"fr": fr, "zh": zh})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return map[string]interface{}{"sentences": sentences}, nil
}
