package compiler

import "bytes"

// StripComments removes "//" line comments and "/* */" block comments from
// JSON text. Comment markers inside string literals are preserved, and
// newlines inside removed comments are kept so positions in later errors
// still point at the right line.
func StripComments(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src))

	inString, escaped := false, false
	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(src) {
			switch src[i+1] {
			case '/':
				for i < len(src) && src[i] != '\n' {
					i++
				}
				if i < len(src) {
					out.WriteByte('\n')
				}
				continue
			case '*':
				i += 2
				for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
					if src[i] == '\n' {
						out.WriteByte('\n')
					}
					i++
				}
				i++ // skip the closing '/'
				continue
			}
		}

		out.WriteByte(c)
	}
	return out.Bytes()
}
