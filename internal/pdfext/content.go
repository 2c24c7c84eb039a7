package pdfext

import "strings"

// decodeContentText walks a page content stream and assembles the arguments
// of the text-showing operators (Tj, TJ, ', "). Positioning operators break
// lines so label/value pairs keep their layout; downstream extraction
// collapses whitespace anyway, so surplus newlines are harmless.
func decodeContentText(content []byte) string {
	var sb strings.Builder
	var pending []string

	flush := func() {
		for _, s := range pending {
			sb.WriteString(s)
		}
		pending = pending[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			s, next := parseLiteral(content, i)
			pending = append(pending, s)
			i = next
		case c == '<' && i+1 < len(content) && content[i+1] != '<':
			s, next := parseHex(content, i)
			pending = append(pending, s)
			i = next
		case c == '<': // dictionary start
			i += 2
		case c == '%':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		case isDelimiter(c):
			i++
		default:
			start := i
			for i < len(content) && !isDelimiter(content[i]) && content[i] != '(' && content[i] != '<' && content[i] != '%' {
				i++
			}
			switch tok := string(content[start:i]); tok {
			case "Tj", "TJ":
				flush()
			case "'", "\"":
				sb.WriteByte('\n')
				flush()
			case "Td", "TD", "T*", "ET", "BT":
				pending = pending[:0]
				sb.WriteByte('\n')
			default:
				// Numbers stay neutral: TJ arrays interleave kerning
				// values with their strings.
				if !isNumeric(tok) {
					pending = pending[:0]
				}
			}
		}
	}
	return sb.String()
}

// parseLiteral consumes a (possibly nested) literal string starting at the
// opening parenthesis and returns its decoded value and the next offset.
func parseLiteral(content []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(content) {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return sb.String(), i + 1
			}
			i++
			switch e := content[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// rare; drop
			case '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					v, n := parseOctal(content, i)
					sb.WriteByte(v)
					i = n - 1
				} else {
					sb.WriteByte(e)
				}
			}
		case '(':
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return sb.String(), i
}

// parseOctal reads up to three octal digits at i.
func parseOctal(content []byte, i int) (byte, int) {
	v := 0
	n := 0
	for ; i < len(content) && n < 3 && content[i] >= '0' && content[i] <= '7'; i, n = i+1, n+1 {
		v = v*8 + int(content[i]-'0')
	}
	return byte(v), i
}

// parseHex consumes a hex string starting at '<'.
func parseHex(content []byte, start int) (string, int) {
	var digits []byte
	i := start + 1
	for i < len(content) && content[i] != '>' {
		if isHexDigit(content[i]) {
			digits = append(digits, content[i])
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for j := 0; j+1 < len(digits); j += 2 {
		sb.WriteByte(hexVal(digits[j])<<4 | hexVal(digits[j+1]))
	}
	return sb.String(), i + 1
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\x00', '[', ']', '{', '}', '/', '>':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c >= '0' && c <= '9' || c == '.' || (i == 0 && (c == '-' || c == '+')) {
			continue
		}
		return false
	}
	return true
}
