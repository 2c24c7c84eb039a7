package identity

import (
	"regexp"
	"strconv"
	"strings"

	"veridoc/pkg/dateutil"
)

var (
	reCNP    = regexp.MustCompile(`\b(\d{13})\b`)
	reSeries = regexp.MustCompile(`(?i)\bSERIA\s*([A-Za-z]{1,2})\b`)
	reNumber = regexp.MustCompile(`(?i)\bNR\.?\s*([0-9]{6})\b`)
	reExpiry = regexp.MustCompile(`(?i)(EXPIRĂ|EXPIRARE|VALABIL|VALID UNTIL)[:\s]*([0-3]?\d[-./][0-1]?\d[-./]\d{2,4})`)
	reName   = regexp.MustCompile(`(?i)\bNUME\b`)
	reAddr   = regexp.MustCompile(`(?i)DOMICILIU|ADRESA|ADDRESS`)
)

// Extract parses the OCR text of an identity card into a partial field set.
// Every field is independent and best-effort: no match means the field stays
// absent, and a pattern miss is never an error.
func Extract(rawText string) Fields {
	var out Fields

	if m := reCNP.FindStringSubmatch(rawText); m != nil {
		out.CNP = ptr(m[1])
	}

	if m := reSeries.FindStringSubmatch(rawText); m != nil {
		out.Series = ptr(strings.ToUpper(m[1]))
	}

	if m := reNumber.FindStringSubmatch(rawText); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			out.Number = &n
		}
	}

	if m := reExpiry.FindStringSubmatch(rawText); m != nil {
		if d, ok := dateutil.Normalize(m[2], true); ok {
			out.Expiry = &d
		}
	}

	extractLabeledLines(rawText, &out)

	return out
}

// extractLabeledLines scans the text top to bottom for the NUME and
// DOMICILIU/ADRESA label lines. The first match per field wins; repeated
// labels further down never overwrite a value already found.
func extractLabeledLines(rawText string, out *Fields) {
	var lines []string
	for _, ln := range strings.Split(rawText, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	for i, ln := range lines {
		if out.Name == nil && reName.MatchString(ln) {
			out.Name = ptr(labelValue(ln, lines[i+1:], 1))
		}
		if out.Address == nil && reAddr.MatchString(ln) {
			out.Address = ptr(labelValue(ln, lines[i+1:], 2))
		}
	}
}

// labelValue resolves a labeled line to its value: the text after the last
// colon when the line carries one, otherwise up to follow non-blank
// continuation lines joined with spaces.
func labelValue(line string, rest []string, follow int) string {
	if strings.Contains(line, ":") {
		parts := strings.Split(line, ":")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	if len(rest) > follow {
		rest = rest[:follow]
	}
	return strings.TrimSpace(strings.Join(rest, " "))
}

func ptr(s string) *string {
	return &s
}
