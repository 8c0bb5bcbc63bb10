// Package validator implements well-formedness checking on top of package
// parser: element nesting (matching close tags), the single-root
// constraint, prolog ordering (optional XML declaration, then optional
// doctype, then exactly one root element), a nesting-depth bound, and
// absence of stray text in the prolog.
//
// It builds no document tree and performs no schema or DTD validation; the
// doctype declaration is recognized syntactically (as a single lexer
// token) but never interpreted. This is the "fast path" the rest of this
// module is built around: validation never constructs attribute maps or
// owned copies, it only walks the token stream the parser already produces.
package validator

import (
	"strings"

	"github.com/shapestone/descent-xml/internal/classifier"
	"github.com/shapestone/descent-xml/internal/lexer"
	"github.com/shapestone/descent-xml/internal/parser"
)

// Default depth bounds, per §4.4 and §9's "unbounded recursion" design note.
const (
	DefaultDocumentDepth = 1000
	DefaultElementDepth  = 10000
)

// elementContext is the "intended evolution" variant named in the original
// design notes: an explicit {valid, depth} pair, not a shared *bool flag.
type elementContext struct {
	valid bool
	depth int
}

// validateElementHandler is the parser.ElementHandler driving element-level
// validation: it decrements the depth budget, recurses into children until
// it reaches the matching ELEMENT_CLOSE_NAME token, and then checks that
// token's slice against the remembered opening name.
func validateElementHandler(tok lexer.Token, name string, attrs []parser.Attr, selfClose bool, ctxP any) lexer.Token {
	ctx := ctxP.(*elementContext)

	if ctx.depth == 0 {
		ctx.valid = false
		return tok
	}
	ctx.depth--

	// A generic, unrecognized "?xml" construct may only ever appear as the
	// document's own prolog item; encountering one here means it was not
	// followed by whitespace/"?" immediately after "<?xml" and therefore
	// fell through to ordinary element lexing (see lexer.xmlDeclBoundary).
	if name == "?xml" {
		ctx.valid = false
		return tok
	}

	if selfClose {
		return tok
	}

	for tok.State != classifier.ElementCloseName {
		tok = parser.Parse(tok, validateElementHandler, nil, ctx)
		if tok.IsUnexpected() || tok.IsEOF() || !ctx.valid {
			ctx.valid = false
			return tok
		}
	}

	ctx.valid = tok.Value() == name
	ctx.depth++
	return parser.Parse(tok, nil, nil, nil)
}

// ValidateElementDepth validates a single element subtree (no prolog, no
// single-root constraint) starting from tok, bounding nesting to depth.
func ValidateElementDepth(tok lexer.Token, depth int) bool {
	for tok.State != classifier.ElementOpen {
		if tok.IsUnexpected() || tok.IsEOF() {
			return false
		}
		tok = lexer.NextRaw(tok)
	}
	if lexer.NextRaw(tok).State != classifier.ElementName {
		return false
	}

	ctx := &elementContext{valid: true, depth: depth}
	tok = parser.Parse(tok, validateElementHandler, nil, ctx)
	return ctx.valid && !tok.IsUnexpected() && !tok.IsEOF()
}

// ValidateElement validates a single element subtree at the default depth
// bound (10000).
func ValidateElement(tok lexer.Token) bool {
	return ValidateElementDepth(tok, DefaultElementDepth)
}

// isBlankText reports whether tok is a TEXT token whose entire value is
// whitespace. Leading whitespace
// before the first '<' is absorbed by the classifier's own START state and
// never reaches here at all. Whitespace immediately following a compound
// prolog item (XMLDECL, DOCTYPE, a comment), however, shares ELEMENT_END's
// transition table and is classified as an ordinary TEXT run like any other
// character following an opening tag's '>' — the classifier has no
// context to tell "gap between prolog items" from "mixed content", so that
// distinction is skipProlog's job: a TEXT run here only disqualifies the
// document if it contains a non-space byte. A TEXT_ENT_START/TEXT_ENT run is
// always disqualifying, since an entity reference is never whitespace.
func isBlankText(tok lexer.Token) bool {
	return tok.State == classifier.Text && strings.TrimSpace(tok.Value()) == ""
}

// skipProlog advances past whitespace-only gaps between prolog items,
// stopping at the next ELEMENT_OPEN token. It reports ok=false if it
// instead encounters EOF, UNEXPECTED, or stray non-space text.
func skipProlog(tok lexer.Token) (lexer.Token, bool) {
	for tok.State != classifier.ElementOpen {
		if tok.IsUnexpected() || tok.IsEOF() {
			return tok, false
		}
		if tok.State == classifier.TextEntStart || tok.State == classifier.TextEnt {
			return tok, false
		}
		if tok.State == classifier.Text && !isBlankText(tok) {
			return tok, false
		}
		tok = lexer.NextRaw(tok)
	}
	return tok, true
}

// ValidateDocumentDepth validates a complete XML document starting from
// tok: optional leading whitespace, optional XML declaration, optional
// doctype, exactly one root element subtree, optional trailing whitespace,
// then EOF. Nesting within the root is bounded to depth.
func ValidateDocumentDepth(tok lexer.Token, depth int) bool {
	tok, ok := skipProlog(tok)
	if !ok {
		return false
	}

	seenDecl, seenDoctype := false, false
	for {
		next := lexer.NextRaw(tok)
		switch next.State {
		case classifier.XMLDecl:
			if seenDecl || seenDoctype {
				return false
			}
			seenDecl = true
			if tok, ok = skipProlog(next); !ok {
				return false
			}
		case classifier.Doctype:
			if seenDoctype {
				return false
			}
			seenDoctype = true
			if tok, ok = skipProlog(next); !ok {
				return false
			}
		case classifier.Comment, classifier.CDATA:
			if tok, ok = skipProlog(next); !ok {
				return false
			}
		case classifier.ElementName:
			goto root
		default:
			return false
		}
	}

root:
	ctx := &elementContext{valid: true, depth: depth}
	tok = parser.Parse(tok, validateElementHandler, nil, ctx)
	if !ctx.valid {
		return false
	}

	for {
		if tok.IsEOF() {
			return true
		}
		if tok.IsUnexpected() {
			return false
		}
		switch tok.State {
		case classifier.ElementOpen:
			return false
		case classifier.TextEntStart, classifier.TextEnt:
			return false
		case classifier.Text:
			if !isBlankText(tok) {
				return false
			}
		}
		tok = lexer.NextRaw(tok)
	}
}

// ValidateDocument validates a complete XML document at the default depth
// bound (1000).
func ValidateDocument(tok lexer.Token) bool {
	return ValidateDocumentDepth(tok, DefaultDocumentDepth)
}
