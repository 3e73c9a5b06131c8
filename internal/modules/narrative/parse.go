package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aristath/fundadvisor/internal/domain"
)

// ErrMalformedReport is returned when a structured block decodes but is not a usable report.
var ErrMalformedReport = errors.New("malformed narrative report")

// ExtractJSONBlock returns the first balanced JSON object in text. Markdown
// code fences are looked inside first. Braces inside string literals are
// ignored. domain.ErrNoStructuredBlock is returned when no object is found.
func ExtractJSONBlock(text string) (string, error) {
	if fenced, ok := fencedBlock(text); ok {
		if block, ok := balancedObject(fenced); ok {
			return block, nil
		}
	}
	if block, ok := balancedObject(text); ok {
		return block, nil
	}
	return "", domain.ErrNoStructuredBlock
}

// ParseReport extracts and decodes a NarrativeReport from generated text.
func ParseReport(text string) (NarrativeReport, error) {
	block, err := ExtractJSONBlock(text)
	if err != nil {
		return NarrativeReport{}, err
	}

	var report NarrativeReport
	if err := json.Unmarshal([]byte(block), &report); err != nil {
		return NarrativeReport{}, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if strings.TrimSpace(report.Summary) == "" {
		return NarrativeReport{}, fmt.Errorf("%w: missing summary", ErrMalformedReport)
	}

	report.normalize()
	return report, nil
}

func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	body := text[start+3:]
	// drop the info string, e.g. ```json
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		body = body[nl+1:]
	}
	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}
	return body[:end], true
}

// balancedObject scans from each opening brace for its matching close,
// tracking string literals and escapes. An unbalanced candidate is skipped.
func balancedObject(text string) (string, bool) {
	for offset := 0; offset < len(text); {
		start := strings.IndexByte(text[offset:], '{')
		if start == -1 {
			return "", false
		}
		start += offset

		depth := 0
		inString := false
		escaped := false

	scan:
		for i := start; i < len(text); i++ {
			ch := text[i]

			if inString {
				switch {
				case escaped:
					escaped = false
				case ch == '\\':
					escaped = true
				case ch == '"':
					inString = false
				}
				continue
			}

			switch ch {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					break scan
				}
			}
		}

		offset = start + 1
	}
	return "", false
}
