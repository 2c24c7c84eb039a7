package invoice

import (
	"regexp"
	"strings"

	"veridoc/pkg/dateutil"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	reNumber = regexp.MustCompile(`(?i)(Factura(?:\s+fiscală)?|Invoice)\s*(?:nr\.?|no\.?|#)?\s*[:\-]?\s*([A-Za-z]{0,4}\s?\d{3,})`)
	reDate   = regexp.MustCompile(`(?i)(Data\s*(?:emiterii|facturii)?|Date)\s*[:\-]?\s*([0-3]?\d[-./][0-1]?\d[-./]\d{2,4})`)
	reTotal  = regexp.MustCompile(`(?i)(Total(?:\s+de\s+plată)?|Amount\s+Due)\s*[:\-]?\s*([0-9]+(?:[.,][0-9]{2})?)`)
)

// Extract parses invoice fields out of native PDF text. Each field is
// captured at most once, from the first match across the whole normalized
// text. The total is kept as a string with the decimal separator normalized
// to a period; judging its value is the decision rules' job.
func Extract(rawText string) Fields {
	var out Fields
	text := normalizeWhitespace(rawText)

	if m := reNumber.FindStringSubmatch(text); m != nil {
		number := strings.ReplaceAll(m[2], " ", "")
		out.Number = &number
	}

	if m := reDate.FindStringSubmatch(text); m != nil {
		if d, ok := dateutil.Normalize(m[2], true); ok {
			out.IssueDate = &d
		}
	}

	if m := reTotal.FindStringSubmatch(text); m != nil {
		total := strings.ReplaceAll(m[2], ",", ".")
		out.Total = &total
	}

	return out
}

// normalizeWhitespace collapses whitespace runs within each line, drops blank
// lines, and rejoins. PDF text extraction pads columns with runs of spaces
// that would otherwise break the label patterns. The function is idempotent.
func normalizeWhitespace(text string) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(reSpaces.ReplaceAllString(ln, " "))
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return strings.Join(lines, "\n")
}
