package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		dayFirst bool
		want     time.Time
		ok       bool
	}{
		{name: "dotted day first", in: "01.02.2030", dayFirst: true, want: date(2030, time.February, 1), ok: true},
		{name: "slashed day first", in: "15/03/2024", dayFirst: true, want: date(2024, time.March, 15), ok: true},
		{name: "dashed day first", in: "7-12-2021", dayFirst: true, want: date(2021, time.December, 7), ok: true},
		{name: "two digit year maps to 2000s", in: "01.01.30", dayFirst: true, want: date(2030, time.January, 1), ok: true},
		{name: "two digit year maps to 1900s", in: "01.01.99", dayFirst: true, want: date(1999, time.January, 1), ok: true},
		{name: "year first form", in: "2024-03-15", dayFirst: true, want: date(2024, time.March, 15), ok: true},
		{name: "month first bias", in: "03/04/2024", dayFirst: false, want: date(2024, time.March, 4), ok: true},
		{name: "swap rescues impossible month", in: "25.12.2023", dayFirst: false, want: date(2023, time.December, 25), ok: true},
		{name: "surrounding whitespace", in: "  01.02.2030  ", dayFirst: true, want: date(2030, time.February, 1), ok: true},
		{name: "empty string", in: "", dayFirst: true},
		{name: "free text", in: "not a date", dayFirst: true},
		{name: "missing component", in: "01.02", dayFirst: true},
		{name: "impossible day", in: "32.01.2024", dayFirst: true},
		{name: "impossible both", in: "45.45.2024", dayFirst: true},
		{name: "february overflow", in: "30.02.2024", dayFirst: true},
		{name: "zero day", in: "0.01.2024", dayFirst: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(tc.in, tc.dayFirst)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	inputs := []string{"", ".", "..", "1.2.3.4", "a.b.c", "//-", "9999999999.1.1", "1..2..3"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Normalize(in, true) }, "input %q", in)
	}
}
