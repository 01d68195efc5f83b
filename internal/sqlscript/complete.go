package sqlscript

// lexState represents the current state of the statement lexer.
type lexState int

const (
	stateNormal lexState = iota
	stateLineComment
	stateBlockComment
	stateSingleQuote
	stateDoubleQuote
	stateDollarQuote
)

// Complete reports whether sql holds one or more syntactically complete
// statements: the last token outside of strings and comments must be a
// statement terminator. Trailing whitespace and comments are ignored.
//
// The lexer understands the literal forms found in PostgreSQL-flavored
// dumps: single-quoted strings with '' escapes, double-quoted
// identifiers, dollar-quoted strings ($$...$$ and $tag$...$tag$), line
// comments (-- to end of line) and block comments (/* */).
func Complete(sql string) bool {
	state := stateNormal
	dollarTag := ""
	terminated := false

	i := 0
	for i < len(sql) {
		ch := sql[i]
		var next byte
		if i+1 < len(sql) {
			next = sql[i+1]
		}

		switch state {
		case stateNormal:
			switch {
			case ch == '-' && next == '-':
				state = stateLineComment
				i += 2
			case ch == '/' && next == '*':
				state = stateBlockComment
				i += 2
			case ch == '\'':
				state = stateSingleQuote
				terminated = false
				i++
			case ch == '"':
				state = stateDoubleQuote
				terminated = false
				i++
			case ch == '$':
				if tag := extractDollarTag(sql, i); tag != "" {
					state = stateDollarQuote
					dollarTag = tag
					terminated = false
					i += len(tag)
				} else {
					terminated = false
					i++
				}
			case ch == ';':
				terminated = true
				i++
			case isSpace(ch):
				i++
			default:
				terminated = false
				i++
			}

		case stateLineComment:
			if ch == '\n' {
				state = stateNormal
			}
			i++

		case stateBlockComment:
			if ch == '*' && next == '/' {
				state = stateNormal
				i += 2
			} else {
				i++
			}

		case stateSingleQuote:
			if ch == '\'' {
				if next == '\'' {
					i += 2
				} else {
					state = stateNormal
					i++
				}
			} else {
				i++
			}

		case stateDoubleQuote:
			if ch == '"' {
				if next == '"' {
					i += 2
				} else {
					state = stateNormal
					i++
				}
			} else {
				i++
			}

		case stateDollarQuote:
			if matchesTag(sql, i, dollarTag) {
				i += len(dollarTag)
				state = stateNormal
				dollarTag = ""
			} else {
				i++
			}
		}
	}

	// An unterminated block comment, string or dollar quote means the
	// final statement is still open. A trailing line comment closes at
	// end of input.
	return terminated && (state == stateNormal || state == stateLineComment)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

// extractDollarTag extracts a dollar-quote tag (e.g., "$$" or "$tag$")
// starting at position i. Returns empty string if not a valid tag.
func extractDollarTag(s string, i int) string {
	if i >= len(s) || s[i] != '$' {
		return ""
	}

	j := i + 1
	for j < len(s) {
		ch := s[j]
		if ch == '$' {
			return s[i : j+1]
		}
		if j == i+1 {
			if !isTagStart(ch) {
				return ""
			}
		} else {
			if !isTagContinue(ch) {
				return ""
			}
		}
		j++
	}

	return ""
}

func isTagStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isTagContinue(ch byte) bool {
	return isTagStart(ch) || (ch >= '0' && ch <= '9')
}

// matchesTag checks if the string at position i starts with the given tag.
func matchesTag(s string, i int, tag string) bool {
	if i+len(tag) > len(s) {
		return false
	}
	return s[i:i+len(tag)] == tag
}
