package identity

import "regexp"

// cnpWeights is the fixed weight vector of the national checksum algorithm.
var cnpWeights = [12]int{2, 7, 9, 1, 4, 6, 3, 5, 8, 2, 7, 9}

var cnpShape = regexp.MustCompile(`^\d{13}$`)

// ValidCNP reports whether s is a 13-digit CNP whose control digit matches
// the weighted checksum of the first twelve digits. It is total over all
// string inputs; anything that is not exactly 13 decimal digits is invalid.
func ValidCNP(s string) bool {
	if !cnpShape.MatchString(s) {
		return false
	}
	sum := 0
	for i, w := range cnpWeights {
		sum += int(s[i]-'0') * w
	}
	control := sum % 11
	if control == 10 {
		control = 1
	}
	return control == int(s[12]-'0')
}
