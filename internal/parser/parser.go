// Package parser consumes lexer tokens and, for each syntactic unit (one
// element with its attributes, or one run of text), invokes a caller
// supplied handler. It does not build a document tree: handlers receive the
// current lexer position and return a (possibly advanced) position,
// permitting recursive descent into children without an intermediate
// structure.
package parser

import (
	"strings"

	"github.com/shapestone/descent-xml/internal/classifier"
	"github.com/shapestone/descent-xml/internal/lexer"
)

// Attr is one (name, value) pair in document order. Value is the borrowed
// interior of the quoted literal; entity references inside it are not
// expanded.
type Attr struct {
	Name  string
	Value string
}

// ElementHandler is invoked once per element, with the current token at the
// element's closing marker, the element name, its attributes in document
// order, whether it self-closed, and the caller's opaque context. It must
// return a token; the parser uses the returned token as its new cursor.
type ElementHandler func(tok lexer.Token, name string, attrs []Attr, selfClose bool, ctx any) lexer.Token

// TextHandler is invoked once per coalesced run of text, with the last text
// token in the run, the merged text (entities not expanded), and the
// caller's opaque context.
type TextHandler func(tok lexer.Token, text string, ctx any) lexer.Token

// Parse advances tok by exactly one structural unit and returns the
// resulting token. If the unit is an element and elementHandler is
// non-nil, it is invoked; if it is a run of text and textHandler is
// non-nil, it is invoked. A nil handler causes the parser to still consume
// the unit's tokens but skip the event. Otherwise the advanced token is
// returned unchanged.
func Parse(tok lexer.Token, elementHandler ElementHandler, textHandler TextHandler, ctx any) lexer.Token {
	tok = lexer.NextRaw(tok)

	switch {
	case tok.State == classifier.ElementName:
		return handleElement(tok, elementHandler, ctx)
	case isTextType(tok.State):
		return handleText(tok, textHandler, ctx)
	}
	return tok
}

func isTextType(s classifier.State) bool {
	return s == classifier.Text || s == classifier.TextEntStart || s == classifier.TextEnt
}

func isAttrValueType(s classifier.State) bool {
	switch s {
	case classifier.AttrValSQ, classifier.AttrValSQEntStart, classifier.AttrValSQEnt,
		classifier.AttrValDQ, classifier.AttrValDQEntStart, classifier.AttrValDQEnt:
		return true
	}
	return false
}

// handleElement implements the attribute-collection algorithm: while in
// ELEMENT_SPACE, consume one attribute name, an optional
// ATTR_EXPECT_ASSIGN, one ATTR_ASSIGN, the quote-start token, a maximal run
// of value/entity tokens, and the matching quote-end token; repeat until
// the element's empty marker or closing '>' is reached.
func handleElement(tok lexer.Token, elementHandler ElementHandler, ctx any) lexer.Token {
	name := tok.Value()
	tok = lexer.NextRaw(tok)

	var attrs []Attr
	for tok.State == classifier.ElementSpace {
		tok = lexer.NextRaw(tok)
		if tok.State != classifier.AttrName {
			break
		}
		attrName := tok.Value()

		tok = lexer.NextRaw(tok)
		if tok.State == classifier.AttrExpectAssign {
			tok = lexer.NextRaw(tok)
		}
		if tok.State != classifier.AttrAssign {
			break
		}
		tok = lexer.NextRaw(tok)

		// tok is now the quote-start token (SQ_START or DQ_START).
		start := tok.End
		tok = lexer.NextRaw(tok)
		for isAttrValueType(tok.State) {
			tok = lexer.NextRaw(tok)
		}
		// tok is now the matching quote-end token.
		value := tok.Script[start:tok.Start]
		attrs = append(attrs, Attr{Name: attrName, Value: value})

		tok = lexer.NextRaw(tok)
	}

	if tok.IsUnexpected() {
		return tok
	}

	selfClose := tok.State == classifier.ElementEmptyMarker
	if selfClose || tok.State == classifier.ElementEnd {
		if elementHandler != nil {
			return elementHandler(tok, name, attrs, selfClose, ctx)
		}
	}
	return tok
}

// textValue coalesces a run of text/text-entity tokens into a single
// borrowed slice without copying, per the parser's "coalesces consecutive
// text and text-entity tokens into one logical string" contract. It
// returns the merged value and the last text-type token in the run (the
// run's terminating non-text token is discarded; the caller re-lexes it on
// its next Parse call).
func textValue(tok lexer.Token) (string, lexer.Token) {
	start := tok.Start
	last := tok
	next := lexer.NextRaw(tok)
	for isTextType(next.State) {
		last = next
		next = lexer.NextRaw(next)
	}
	return last.Script[start:last.End], last
}

func handleText(tok lexer.Token, textHandler TextHandler, ctx any) lexer.Token {
	value, last := textValue(tok)
	if textHandler != nil {
		return textHandler(last, value, ctx)
	}
	return last
}

// copyElementHandler wraps an ElementHandler so it receives independently
// owned copies of the name and attribute strings, per the C-string
// convenience variant's contract (§4.3). A failure while producing those
// copies (including a runtime out-of-memory panic, the Go analogue of an
// allocation failure) is converted into a PARSE_ERROR token rather than
// escaping uncontrolled.
func copyElementHandler(inner ElementHandler) ElementHandler {
	if inner == nil {
		return nil
	}
	return func(tok lexer.Token, name string, attrs []Attr, selfClose bool, ctx any) lexer.Token {
		copiedName, copiedAttrs, failed := cloneElementStrings(name, attrs)
		if failed {
			return lexer.Token{State: classifier.ParseError, Script: tok.Script, Start: tok.Start, End: tok.Start}
		}
		return inner(tok, copiedName, copiedAttrs, selfClose, ctx)
	}
}

// cloneString is strings.Clone behind a variable indirection so tests can
// simulate an allocation failure without needing to exhaust real memory.
var cloneString = strings.Clone

// cloneElementStrings produces owned copies of name and attrs, recovering a
// panic during the copy (including a runtime out-of-memory panic, the Go
// analogue of an allocation failure) into failed=true rather than letting it
// escape. A panic raised later, by the caller-supplied handler itself, is
// outside this function's scope and propagates normally.
func cloneElementStrings(name string, attrs []Attr) (copiedName string, copiedAttrs []Attr, failed bool) {
	defer func() {
		if recover() != nil {
			failed = true
		}
	}()
	copiedName = cloneString(name)
	copiedAttrs = make([]Attr, len(attrs))
	for i, a := range attrs {
		copiedAttrs[i] = Attr{Name: cloneString(a.Name), Value: cloneString(a.Value)}
	}
	return copiedName, copiedAttrs, false
}

// copyTextHandler is copyElementHandler's counterpart for text events.
func copyTextHandler(inner TextHandler) TextHandler {
	if inner == nil {
		return nil
	}
	return func(tok lexer.Token, text string, ctx any) lexer.Token {
		copiedText, failed := cloneTextString(text)
		if failed {
			return lexer.Token{State: classifier.ParseError, Script: tok.Script, Start: tok.Start, End: tok.Start}
		}
		return inner(tok, copiedText, ctx)
	}
}

// cloneTextString is cloneElementStrings's counterpart for text events.
func cloneTextString(text string) (copiedText string, failed bool) {
	defer func() {
		if recover() != nil {
			failed = true
		}
	}()
	return cloneString(text), false
}

// ParseCopy is the copying convenience variant of Parse (§4.3): handlers
// are invoked with independently owned string copies rather than slices
// aliasing the input, so they remain valid after the input buffer is
// discarded. Its one additional failure mode, a PARSE_ERROR token, is
// surfaced exactly where a C allocator would have failed to produce those
// copies.
func ParseCopy(tok lexer.Token, elementHandler ElementHandler, textHandler TextHandler, ctx any) lexer.Token {
	return Parse(tok, copyElementHandler(elementHandler), copyTextHandler(textHandler), ctx)
}
