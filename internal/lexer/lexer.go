// Package lexer drives the classifier over an input string, coalescing
// runs of characters that stay in the same state into single tokens, and
// recognizing the four multi-character compound forms (doctype, CDATA,
// comment, XML declaration) as single tokens of their own.
//
// Tokens are immutable, borrowed views into the original input: a Token
// never copies bytes, it only remembers offsets into the string the caller
// supplied. The caller's string must outlive every Token derived from it,
// which Go's garbage collector guarantees automatically since the Token
// holds the string value itself (and Go strings are backed by immutable,
// shared byte arrays).
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/descent-xml/internal/classifier"
)

// Token is a (state, value-slice) pair produced by NextRaw. Script is the
// full input the token was lexed from; Start and End delimit the token's
// value within it.
type Token struct {
	State  classifier.State
	Script string
	Start  int
	End    int
}

// Value returns the token's borrowed slice of the original input.
func (t Token) Value() string {
	return t.Script[t.Start:t.End]
}

// IsEOF reports whether t is the terminal end-of-input token.
func (t Token) IsEOF() bool {
	return t.State == classifier.EOF
}

// IsUnexpected reports whether t is the terminal lexical-error token.
func (t Token) IsUnexpected() bool {
	return t.State == classifier.Unexpected
}

// IsTerminal reports whether t is a sticky terminal token (EOF, Unexpected,
// or ParseError): once reached, further NextRaw/parse calls must return it
// unchanged rather than decoding further.
func (t Token) IsTerminal() bool {
	return t.State == classifier.EOF || t.State == classifier.Unexpected || t.State == classifier.ParseError
}

// Init constructs the initial token for script: a zero-length START token
// positioned at offset 0, from which the first call to NextRaw produces the
// document's first real token.
func Init(script string) Token {
	return Token{State: classifier.Start, Script: script, Start: 0, End: 0}
}

// decodeAt reports the rune at pos and its width in bytes. At end of input
// it reports the classifier.RuneEOF sentinel with width 0. A malformed
// encoding is reported via ok=false.
func decodeAt(script string, pos int) (r rune, width int, ok bool) {
	if pos >= len(script) {
		return classifier.RuneEOF, 0, true
	}
	r, size := utf8.DecodeRuneInString(script[pos:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, false
	}
	return r, size, true
}

func unexpectedAt(script string, pos int) Token {
	return Token{State: classifier.Unexpected, Script: script, Start: pos, End: pos}
}

func eofAt(script string, pos, width int) Token {
	return Token{State: classifier.EOF, Script: script, Start: pos, End: pos + width}
}

// NextRaw advances prev by exactly one raw token. If prev is already a
// sticky terminal token, it is returned unchanged (the classifier's EOF and
// Unexpected states may never be invoked as transitions).
func NextRaw(prev Token) Token {
	if prev.IsTerminal() {
		return prev
	}

	cursor := prev.End

	if prev.State == classifier.ElementOpen {
		if tok, ok := matchCompound(prev.Script, cursor); ok {
			return tok
		}
	}

	r, w, ok := decodeAt(prev.Script, cursor)
	if !ok {
		return unexpectedAt(prev.Script, cursor)
	}

	s1 := classifier.Transition(prev.State, r)
	if s1 == classifier.Unexpected {
		return unexpectedAt(prev.Script, cursor)
	}
	if s1 == classifier.EOF {
		return eofAt(prev.Script, cursor, w)
	}

	pos := cursor + w
	for {
		r2, w2, ok2 := decodeAt(prev.Script, pos)
		if !ok2 {
			break
		}
		if r2 == classifier.RuneEOF {
			break
		}
		if classifier.Transition(s1, r2) != s1 {
			break
		}
		pos += w2
	}

	return Token{State: s1, Script: prev.Script, Start: cursor, End: pos}
}

// matchCompound recognizes the four special forms that follow "<" as a
// single token spanning the construct including its terminator, per the
// data model's explicit compound-token invariant.
func matchCompound(script string, pos int) (Token, bool) {
	rest := script[pos:]
	switch {
	case strings.HasPrefix(rest, "!DOCTYPE"):
		return scanDoctype(script, pos)
	case strings.HasPrefix(rest, "![CDATA["):
		return scanTerminated(script, pos, classifier.CDATA, "]]>")
	case strings.HasPrefix(rest, "!--"):
		return scanTerminated(script, pos, classifier.Comment, "-->")
	case strings.HasPrefix(rest, "?xml") && xmlDeclBoundary(rest):
		return scanTerminated(script, pos, classifier.XMLDecl, "?>")
	}
	return Token{}, false
}

// xmlDeclBoundary requires "?xml" to be followed by whitespace or "?" so a
// generic processing instruction like "<?xmlfoo?>" isn't misrecognized as
// the XML declaration.
func xmlDeclBoundary(rest string) bool {
	if len(rest) == len("?xml") {
		return false
	}
	c := rest[len("?xml")]
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '?'
}

// scanTerminated consumes up to and including the first occurrence of term,
// emitting state as a single compound token. An unterminated construct
// yields UNEXPECTED.
func scanTerminated(script string, pos int, state classifier.State, term string) (Token, bool) {
	idx := strings.Index(script[pos:], term)
	if idx < 0 {
		return unexpectedAt(script, pos), true
	}
	end := pos + idx + len(term)
	return Token{State: state, Script: script, Start: pos, End: end}, true
}

// scanDoctype consumes a "<!DOCTYPE ...>" declaration, including the
// optional SYSTEM/PUBLIC external-id forms, up to and including the closing
// ">". A ">" that occurs inside a quoted literal does not terminate the
// declaration. An unterminated declaration yields UNEXPECTED.
func scanDoctype(script string, pos int) (Token, bool) {
	i := pos
	var quote byte
	for i < len(script) {
		c := script[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			i++
		case '>':
			return Token{State: classifier.Doctype, Script: script, Start: pos, End: i + 1}, true
		default:
			i++
		}
	}
	return unexpectedAt(script, pos), true
}
