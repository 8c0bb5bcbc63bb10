// Package xml provides streaming XML parsing and well-formedness
// validation.
//
// This package does not build a document tree, does not expand entity
// references, and does not perform schema or DTD validation; the doctype
// declaration is recognized syntactically but never interpreted. It is
// built around a recursive-descent, callback-driven parser: callers supply
// handlers that are invoked once per element or per run of text, and each
// handler receives the parser's current position and returns a (possibly
// advanced) position, permitting recursive descent into children without
// an intermediate tree.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. A Token is an immutable, borrowed view over its input
// string; nothing in this package mutates shared state.
//
// # Parsing API
//
// Init produces the starting Token for a document; Parse advances it by
// exactly one structural unit, invoking the supplied handlers:
//
//	tok := xml.Init(`<user id="123"><name>Alice</name></user>`)
//	var elementHandler xml.ElementHandler
//	elementHandler = func(tok xml.Token, name string, attrs []xml.Attr, selfClose bool, ctx any) xml.Token {
//	    fmt.Println("element:", name)
//	    if selfClose {
//	        return tok
//	    }
//	    for tok.State != xml.ElementCloseName {
//	        tok = xml.Parse(tok, elementHandler, nil, ctx)
//	    }
//	    return xml.Parse(tok, nil, nil, nil)
//	}
//	for !tok.IsTerminal() {
//	    tok = xml.Parse(tok, elementHandler, nil, nil)
//	}
//
// ParseCopy is the copying convenience variant: handlers receive
// independently owned string copies of the element name, attribute
// name/value pairs, and text runs, rather than slices aliasing the input.
//
// # Validation API
//
// Validate and ValidateElement check well-formedness without invoking any
// caller handler:
//
//	if err := xml.Validate(doc); err != nil {
//	    // doc is not a well-formed document
//	}
package xml

import (
	"errors"

	"github.com/shapestone/descent-xml/internal/classifier"
	"github.com/shapestone/descent-xml/internal/lexer"
	"github.com/shapestone/descent-xml/internal/parser"
	"github.com/shapestone/descent-xml/internal/validator"
)

// State is a classifier state, the tag identifying a Token's kind.
type State = classifier.State

// The subset of classifier states a caller's handler is expected to
// compare tok.State against while driving Parse itself (see the package
// example above); the remaining states are implementation detail of the
// lexing/parsing algorithm and are not re-exported.
const (
	ElementCloseName = classifier.ElementCloseName
	EOF              = classifier.EOF
	Unexpected       = classifier.Unexpected
	ParseErrorState  = classifier.ParseError
)

// Token is an immutable, borrowed view over a span of the original input.
type Token = lexer.Token

// Init returns the starting token for a new parse or validation pass over
// input.
func Init(input string) Token {
	return lexer.Init(input)
}

// Attr is one attribute name/value pair in document order.
type Attr = parser.Attr

// ElementHandler is invoked once per element; see Parse.
type ElementHandler = parser.ElementHandler

// TextHandler is invoked once per coalesced run of text; see Parse.
type TextHandler = parser.TextHandler

// Parse advances tok by exactly one structural unit (one element with its
// attributes, or one run of text), invoking elementHandler or textHandler
// as appropriate. Either handler may be nil, in which case the unit is
// still consumed but no event is raised.
func Parse(tok Token, elementHandler ElementHandler, textHandler TextHandler, ctx any) Token {
	return parser.Parse(tok, elementHandler, textHandler, ctx)
}

// ParseCopy is the copying convenience variant of Parse: handlers receive
// independently owned string copies rather than slices aliasing the input,
// so the values remain valid after the input buffer is discarded.
func ParseCopy(tok Token, elementHandler ElementHandler, textHandler TextHandler, ctx any) Token {
	return parser.ParseCopy(tok, elementHandler, textHandler, ctx)
}

// ErrNotWellFormed is returned by Validate and ValidateElement when the
// input fails well-formedness checking. It carries no position: the
// validator is a single pass/fail predicate over the whole document, not a
// diagnostic parser, so a caller wanting the location of the first
// offending byte should drive Parse directly instead.
var ErrNotWellFormed = errors.New("xml: input is not a well-formed document")

// Validate checks a complete document for well-formedness: element
// nesting, the single-root constraint, prolog ordering (an optional XML
// declaration, then an optional doctype, then exactly one root element),
// and absence of stray text outside the root.
//
// Returns nil if input is well-formed, ErrNotWellFormed otherwise.
func Validate(input string) error {
	if validator.ValidateDocument(lexer.Init(input)) {
		return nil
	}
	return ErrNotWellFormed
}

// ValidateElement checks a single element subtree for well-formedness
// (matching close tags, to a bounded nesting depth). Unlike Validate, it
// imposes no single-root constraint and does not recognize a prolog: it
// validates the element that opens the input (after optional leading
// whitespace) and ignores anything after it. Input whose first markup is
// not an element's opening tag, such as a prolog item or a comment, is
// rejected.
//
// Returns nil if that element is well-formed, ErrNotWellFormed otherwise.
func ValidateElement(input string) error {
	if validator.ValidateElement(lexer.Init(input)) {
		return nil
	}
	return ErrNotWellFormed
}
