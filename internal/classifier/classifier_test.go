package classifier

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		name  string
		state State
		input rune
		want  State
	}{
		{"start on '<' opens an element", Start, '<', ElementOpen},
		{"start on space stays start", Start, ' ', Start},
		{"start on a name char is unexpected", Start, 'a', Unexpected},

		{"element-open on name-start char begins a name", ElementOpen, 'a', ElementName},
		{"element-open on slash begins a close tag", ElementOpen, '/', ElementClose},

		{"element-close on name-start char begins close name", ElementClose, 'a', ElementCloseName},
		{"element-close on space is unexpected", ElementClose, ' ', Unexpected},

		{"element-close-name continues on name char", ElementCloseName, 'b', ElementCloseName},
		{"element-close-name on space moves to close space", ElementCloseName, ' ', ElementCloseSpace},
		{"element-close-name on '>' ends the element", ElementCloseName, '>', ElementEnd},
		{"element-close-name on EOF is unexpected", ElementCloseName, RuneEOF, Unexpected},

		{"element-close-space continues on space", ElementCloseSpace, ' ', ElementCloseSpace},
		{"element-close-space on '>' ends the element", ElementCloseSpace, '>', ElementEnd},
		{"element-close-space on name char is unexpected", ElementCloseSpace, 'a', Unexpected},

		{"element-name continues on name char", ElementName, 'a', ElementName},
		{"element-name on space moves to element space", ElementName, ' ', ElementSpace},
		{"element-name on '>' ends the element", ElementName, '>', ElementEnd},
		{"element-name on '\"' is unexpected", ElementName, '"', Unexpected},

		{"element-space on name-start char begins an attribute", ElementSpace, 'a', AttrName},
		{"element-space continues on space", ElementSpace, ' ', ElementSpace},
		{"element-space on '>' ends the element", ElementSpace, '>', ElementEnd},
		{"element-space on '\"' is unexpected", ElementSpace, '"', Unexpected},

		{"attr-expect-assign on '=' assigns", AttrExpectAssign, '=', AttrAssign},
		{"attr-expect-assign continues on space", AttrExpectAssign, ' ', AttrExpectAssign},
		{"attr-expect-assign on name char is unexpected", AttrExpectAssign, 'a', Unexpected},

		{"attr-assign continues on space", AttrAssign, ' ', AttrAssign},
		{"attr-assign on single quote starts a single-quoted value", AttrAssign, '\'', AttrValSQStart},
		{"attr-assign on double quote starts a double-quoted value", AttrAssign, '"', AttrValDQStart},
		{"attr-assign on name char is unexpected", AttrAssign, 'a', Unexpected},

		{"single-quoted value ends on matching quote", AttrValSQ, '\'', AttrValSQEnd},
		{"single-quoted value starts an entity on '%'", AttrValSQ, '%', AttrValSQEntStart},
		{"single-quoted value starts an entity on '&'", AttrValSQ, '&', AttrValSQEntStart},
		{"single-quoted value rejects a bare '<'", AttrValSQ, '<', Unexpected},

		{"single-quoted entity-start accepts '#'", AttrValSQEntStart, '#', AttrValSQEnt},
		{"single-quoted entity-start accepts a name char", AttrValSQEntStart, 'a', AttrValSQEnt},
		{"single-quoted entity-start rejects '>'", AttrValSQEntStart, '>', Unexpected},

		{"single-quoted entity continues on name char", AttrValSQEnt, 'a', AttrValSQEnt},
		{"single-quoted entity ends on ';'", AttrValSQEnt, ';', AttrValSQ},
		{"single-quoted entity rejects space", AttrValSQEnt, ' ', Unexpected},

		{"single-quoted value-end ends the element on '>'", AttrValSQEnd, '>', ElementEnd},
		{"single-quoted value-end moves to element space", AttrValSQEnd, ' ', ElementSpace},
		{"single-quoted value-end rejects a name char", AttrValSQEnd, 'a', Unexpected},

		{"double-quoted value ends on matching quote", AttrValDQ, '"', AttrValDQEnd},
		{"double-quoted value starts an entity on '%'", AttrValDQ, '%', AttrValDQEntStart},
		{"double-quoted value starts an entity on '&'", AttrValDQ, '&', AttrValDQEntStart},
		{"double-quoted value rejects a bare '<'", AttrValDQ, '<', Unexpected},

		{"double-quoted entity-start accepts '#'", AttrValDQEntStart, '#', AttrValDQEnt},
		{"double-quoted entity-start accepts a name char", AttrValDQEntStart, 'a', AttrValDQEnt},
		{"double-quoted entity-start rejects '>'", AttrValDQEntStart, '>', Unexpected},

		{"double-quoted entity continues on name char", AttrValDQEnt, 'a', AttrValDQEnt},
		{"double-quoted entity ends on ';'", AttrValDQEnt, ';', AttrValDQ},
		{"double-quoted entity rejects space", AttrValDQEnt, ' ', Unexpected},

		{"double-quoted value-end ends the element on '>'", AttrValDQEnd, '>', ElementEnd},
		{"double-quoted value-end moves to element space", AttrValDQEnd, ' ', ElementSpace},
		{"double-quoted value-end rejects a name char", AttrValDQEnd, 'a', Unexpected},

		{"text continues on an ordinary char", Text, 'a', Text},
		{"text on '<' opens an element", Text, '<', ElementOpen},
		{"text starts an entity on '&'", Text, '&', TextEntStart},
		{"text starts an entity on '%'", Text, '%', TextEntStart},
		{"text on EOF reaches EOF", Text, RuneEOF, EOF},
		{"text rejects a bare '>'", Text, '>', Unexpected},

		{"text entity-start accepts '#'", TextEntStart, '#', TextEnt},
		{"text entity-start accepts a name char", TextEntStart, 'a', TextEnt},
		{"text entity-start rejects '>'", TextEntStart, '>', Unexpected},

		{"text entity continues on name char", TextEnt, 'a', TextEnt},
		{"text entity ends on ';'", TextEnt, ';', Text},
		{"text entity rejects space", TextEnt, ' ', Unexpected},

		{"element-end resumes as text on an ordinary char", ElementEnd, 'a', Text},
		{"element-end rejects a bare '>'", ElementEnd, '>', Unexpected},
		{"element-end on '<' opens an element", ElementEnd, '<', ElementOpen},
		{"element-end on EOF reaches EOF", ElementEnd, RuneEOF, EOF},
		{"element-end starts an entity on '%'", ElementEnd, '%', TextEntStart},
		{"element-end starts an entity on '&'", ElementEnd, '&', TextEntStart},

		{"a compound token's end resumes exactly like element-end (doctype)", Doctype, 'a', Text},
		{"a compound token's end resumes exactly like element-end (cdata)", CDATA, '<', ElementOpen},
		{"a compound token's end resumes exactly like element-end (comment)", Comment, RuneEOF, EOF},
		{"a compound token's end resumes exactly like element-end (xmldecl)", XMLDecl, ' ', Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.state, tt.input)
			if got != tt.want {
				t.Errorf("Transition(%s, %q) = %s, want %s", tt.state, tt.input, got, tt.want)
			}
		})
	}
}

func TestTransitionPanicsOnTerminalState(t *testing.T) {
	for _, s := range []State{EOF, Unexpected, ParseError} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Transition(%s, ...) did not panic", s)
				}
			}()
			Transition(s, 'a')
		}()
	}
}

func TestStateStringUnknown(t *testing.T) {
	var s State = 9999
	if got := s.String(); got == "" {
		t.Error("String() on an unknown state returned empty")
	}
}

func TestIsNameStartAndNameChar(t *testing.T) {
	if !isNameStartChar('a') || !isNameStartChar('_') || !isNameStartChar(':') {
		t.Error("expected ASCII letter, underscore, colon to be name-start characters")
	}
	if isNameStartChar('1') {
		t.Error("a digit must not be a name-start character")
	}
	if !isNameChar('1') || !isNameChar('-') || !isNameChar('.') {
		t.Error("expected digit, dash, dot to be name characters")
	}
	if isNameChar(' ') {
		t.Error("space must not be a name character")
	}
}

func TestClassOfEOFDistinguishesSentinelFromNUL(t *testing.T) {
	if ClassOf(RuneEOF) != ClassEOF {
		t.Error("RuneEOF must classify as ClassEOF")
	}
	if ClassOf(0) != ClassEOF {
		t.Error("embedded NUL must also classify as ClassEOF")
	}
}
