package pdfext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContentText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "simple Tj",
			content: `BT /F1 12 Tf 50 700 Td (Factura nr. 1001) Tj ET`,
			want:    "Factura nr. 1001",
		},
		{
			name:    "TJ array with kerning",
			content: `BT [(Tot) -20 (al:) 5 ( 120,50)] TJ ET`,
			want:    "Total: 120,50",
		},
		{
			name:    "Td breaks lines",
			content: `BT (Data: 01.02.2024) Tj 0 -14 Td (Total: 99,00) Tj ET`,
			want:    "Data: 01.02.2024\nTotal: 99,00",
		},
		{
			name:    "quote operator starts new line",
			content: `BT (first) Tj (second) ' ET`,
			want:    "first\nsecond",
		},
		{
			name:    "escaped parentheses and octal",
			content: `BT (Total \(RON\): \061\060) Tj ET`,
			want:    "Total (RON): 10",
		},
		{
			name:    "hex string",
			content: `BT <466163747572 61> Tj ET`,
			want:    "Factura",
		},
		{
			name:    "strings without text operator are dropped",
			content: `/Annot (hidden) /Type 1 0 0 1 cm BT (shown) Tj ET`,
			want:    "shown",
		},
		{
			name:    "empty stream",
			content: ``,
			want:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeContentText([]byte(tc.content))
			assert.Equal(t, tc.want, trimBlank(got))
		})
	}
}

// trimBlank drops leading/trailing newlines the positioning operators emit;
// the invoice extractor normalizes them away in production.
func trimBlank(s string) string {
	for len(s) > 0 && (s[0] == '\n' || s[0] == ' ') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
