package parser

import (
	"testing"

	"github.com/shapestone/descent-xml/internal/classifier"
	"github.com/shapestone/descent-xml/internal/lexer"
)

// FuzzParse exercises Parse end to end on arbitrary input, recursing into
// children the way a real caller would. It only asserts the absence of
// panics and that the final token is always one of the terminal states;
// malformed input is expected and not itself a failure.
func FuzzParse(f *testing.F) {
	f.Add("<root></root>")
	f.Add("<user id=\"123\">Alice</user>")
	f.Add("<empty/>")
	f.Add("<?xml version=\"1.0\"?><root/>")
	f.Add("<nested><child><grandchild/></child></nested>")
	f.Add("<![CDATA[some data]]>")
	f.Add("<!-- comment --><root/>")
	f.Add("")

	var elementHandler ElementHandler
	elementHandler = func(tok lexer.Token, name string, attrs []Attr, selfClose bool, ctx any) lexer.Token {
		if selfClose {
			return tok
		}
		for tok.State != classifier.ElementCloseName {
			tok = Parse(tok, elementHandler, nil, ctx)
			if tok.IsUnexpected() || tok.IsEOF() {
				return tok
			}
		}
		return Parse(tok, nil, nil, nil)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tok := lexer.Init(input)
		for i := 0; i < len(input)+16; i++ {
			tok = Parse(tok, elementHandler, nil, nil)
			if tok.IsTerminal() {
				return
			}
		}
		t.Fatalf("no terminal token after %d Parse calls: %+v", len(input)+16, tok)
	})
}
