// Package invoice extracts the basic billing fields from the native text of
// an invoice PDF. Like the identity extractor it is pure and best-effort:
// absent fields stay nil and are judged by the decision rules, not here.
package invoice

import "time"

// Fields is the partial field set extracted from one invoice. A nil member
// means the field was not found in the text.
type Fields struct {
	Number    *string
	IssueDate *time.Time
	Total     *string
}

// PresentFields lists the names of the fields that were found, for audit
// entries that must not carry the values themselves.
func (f Fields) PresentFields() []string {
	present := []string{}
	if f.Number != nil {
		present = append(present, "number")
	}
	if f.IssueDate != nil {
		present = append(present, "issue_date")
	}
	if f.Total != nil {
		present = append(present, "total")
	}
	return present
}
