// Package identity turns raw OCR text from a Romanian identity card into a
// typed, partial field set and authenticates the CNP checksum. Extraction is
// best-effort: a field the text does not contain stays nil, which downstream
// rules treat differently from an empty value.
package identity

import "time"

// Fields is the partial field set extracted from one ID document. A nil
// member means the field was not found in the text.
type Fields struct {
	CNP     *string
	Series  *string
	Number  *int
	Expiry  *time.Time
	Name    *string
	Address *string
}

// PresentFields lists the names of the fields that were found, for audit
// entries that must not carry the values themselves.
func (f Fields) PresentFields() []string {
	present := []string{}
	if f.CNP != nil {
		present = append(present, "cnp")
	}
	if f.Series != nil {
		present = append(present, "series")
	}
	if f.Number != nil {
		present = append(present, "number")
	}
	if f.Expiry != nil {
		present = append(present, "expiry")
	}
	if f.Name != nil {
		present = append(present, "name")
	}
	if f.Address != nil {
		present = append(present, "address")
	}
	return present
}
