// Package classifier implements the per-character finite-state machine at
// the base of the XML lexical grammar. Every state is a first-class value;
// Transition is the single pure function from (state, code point) to the
// next state. EOF and Unexpected are sentinels, not real states: invoking
// Transition with either as the current state is a contract violation and
// panics rather than returning a bogus successor.
package classifier

import "fmt"

// State is a node in the lexical FSM.
type State int

const (
	Start State = iota
	ElementOpen
	ElementName
	ElementSpace
	ElementEmptyMarker
	ElementEnd
	ElementClose
	ElementCloseName
	ElementCloseSpace
	AttrName
	AttrExpectAssign
	AttrAssign
	AttrValSQStart
	AttrValSQ
	AttrValSQEntStart
	AttrValSQEnt
	AttrValSQEnd
	AttrValDQStart
	AttrValDQ
	AttrValDQEntStart
	AttrValDQEnt
	AttrValDQEnd
	Text
	TextEntStart
	TextEnt
	Doctype
	CDATA
	Comment
	XMLDecl
	EOF
	Unexpected
	// ParseError is never produced by the classifier or the lexer; it is
	// surfaced only by the copying convenience wrapper in package parser
	// when producing an owned copy of a token's value fails.
	ParseError
)

var stateNames = map[State]string{
	Start:              "START",
	ElementOpen:        "ELEMENT_OPEN",
	ElementName:        "ELEMENT_NAME",
	ElementSpace:       "ELEMENT_SPACE",
	ElementEmptyMarker: "ELEMENT_EMPTY_MARKER",
	ElementEnd:         "ELEMENT_END",
	ElementClose:       "ELEMENT_CLOSE",
	ElementCloseName:   "ELEMENT_CLOSE_NAME",
	ElementCloseSpace:  "ELEMENT_CLOSE_SPACE",
	AttrName:           "ATTR_NAME",
	AttrExpectAssign:   "ATTR_EXPECT_ASSIGN",
	AttrAssign:         "ATTR_ASSIGN",
	AttrValSQStart:     "ATTR_VAL_SQ_START",
	AttrValSQ:          "ATTR_VAL_SQ",
	AttrValSQEntStart:  "ATTR_VAL_SQ_ENT_START",
	AttrValSQEnt:       "ATTR_VAL_SQ_ENT",
	AttrValSQEnd:       "ATTR_VAL_SQ_END",
	AttrValDQStart:     "ATTR_VAL_DQ_START",
	AttrValDQ:          "ATTR_VAL_DQ",
	AttrValDQEntStart:  "ATTR_VAL_DQ_ENT_START",
	AttrValDQEnt:       "ATTR_VAL_DQ_ENT",
	AttrValDQEnd:       "ATTR_VAL_DQ_END",
	Text:               "TEXT",
	TextEntStart:       "TEXT_ENT_START",
	TextEnt:            "TEXT_ENT",
	Doctype:            "DOCTYPE",
	CDATA:              "CDATA",
	Comment:            "COMMENT",
	XMLDecl:            "XMLDECL",
	EOF:                "EOF",
	Unexpected:         "UNEXPECTED",
	ParseError:         "PARSE_ERROR",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CharClass is the character classification the classifier derives from
// each code point before consulting the transition table.
type CharClass int

const (
	ClassEOF CharClass = iota
	ClassNameStart
	ClassName
	ClassSpace
	ClassTextChar
	ClassLt
	ClassGt
	ClassSlash
	ClassQMark
	ClassEMark
	ClassEquals
	ClassSQuote
	ClassDQuote
	ClassAmp
	ClassPercent
	ClassSemicolon
	ClassHash
	ClassDash
)

// runeEOF is the sentinel code point fed to ClassOf/Transition to represent
// legitimate end of input, distinct from an embedded U+0000.
const runeEOF rune = -1

func in(c, lo, hi rune) bool { return c >= lo && c <= hi }

func isNameStartChar(c rune) bool {
	switch {
	case c == ':' || c == '_':
		return true
	case in(c, 'A', 'Z') || in(c, 'a', 'z'):
		return true
	case in(c, 0xC0, 0xD6), in(c, 0xD8, 0xF6), in(c, 0xF8, 0x2FF):
		return true
	case in(c, 0x370, 0x37D), in(c, 0x37F, 0x1FFF):
		return true
	case in(c, 0x200C, 0x200D):
		return true
	case in(c, 0x2070, 0x218F), in(c, 0x2C00, 0x2FEF):
		return true
	case in(c, 0x3001, 0xD7FF), in(c, 0xF900, 0xFDCF), in(c, 0xFDF0, 0xFFFD):
		return true
	case in(c, 0x10000, 0xEFFFF):
		return true
	}
	return false
}

func isNameChar(c rune) bool {
	switch {
	case isNameStartChar(c):
		return true
	case c == '-' || c == '.':
		return true
	case in(c, '0', '9'):
		return true
	case c == 0xB7:
		return true
	case in(c, 0x0300, 0x036F):
		return true
	case in(c, 0x203F, 0x2040):
		return true
	}
	return false
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ClassOf derives the character class the transition table switches on.
func ClassOf(c rune) CharClass {
	switch {
	case c == runeEOF || c == 0:
		return ClassEOF
	case c == '<':
		return ClassLt
	case c == '>':
		return ClassGt
	case c == '/':
		return ClassSlash
	case c == '?':
		return ClassQMark
	case c == '!':
		return ClassEMark
	case c == '=':
		return ClassEquals
	case c == '\'':
		return ClassSQuote
	case c == '"':
		return ClassDQuote
	case c == '&':
		return ClassAmp
	case c == '%':
		return ClassPercent
	case c == ';':
		return ClassSemicolon
	case c == '#':
		return ClassHash
	case c == '-':
		return ClassDash
	case isSpace(c):
		return ClassSpace
	case isNameStartChar(c):
		return ClassNameStart
	case isNameChar(c):
		return ClassName
	}
	return ClassTextChar
}

func entityStart(class CharClass) bool {
	return class == ClassNameStart || class == ClassHash
}

// entCont is the shared ENT_CONT behavior: loop on name-ish characters,
// terminate on ';' by returning to the containing state, anything else is
// UNEXPECTED. containing is the state the entity reference resumes into
// once terminated (TEXT or the matching ATTR_VAL_SQ/ATTR_VAL_DQ value state).
func entCont(class CharClass, self, containing State) State {
	switch class {
	case ClassSemicolon:
		return containing
	case ClassNameStart, ClassName, ClassHash:
		return self
	}
	return Unexpected
}

// Transition is the classifier's sole exported operation: given the current
// state and the next code point, returns the successor state. s must not be
// EOF or Unexpected; invoking Transition on either is a programmer error
// (the sentinels are error-surfacing constants, never real transitions) and
// panics immediately rather than silently returning a bogus state.
func Transition(s State, c rune) State {
	class := ClassOf(c)

	switch s {
	case Start:
		switch class {
		case ClassLt:
			return ElementOpen
		case ClassSpace:
			return Start
		}

	case ElementOpen:
		switch class {
		case ClassNameStart:
			return ElementName
		case ClassSlash:
			return ElementClose
		case ClassEMark, ClassQMark:
			// Lets the lexer's compound-token lookahead recognize
			// !DOCTYPE, ![CDATA[, !--, and ?xml as special forms;
			// anything else just becomes an (inert) element name.
			return ElementName
		}

	case ElementName:
		switch class {
		case ClassNameStart, ClassName, ClassDash:
			return ElementName
		case ClassSpace:
			return ElementSpace
		case ClassGt:
			return ElementEnd
		case ClassSlash, ClassQMark:
			return ElementEmptyMarker
		}

	case ElementEmptyMarker:
		if class == ClassGt {
			return ElementEnd
		}

	case ElementSpace:
		switch class {
		case ClassNameStart:
			return AttrName
		case ClassSpace:
			return ElementSpace
		case ClassGt:
			return ElementEnd
		case ClassSlash, ClassQMark:
			return ElementEmptyMarker
		}

	case AttrName:
		switch class {
		case ClassNameStart, ClassName, ClassDash:
			return AttrName
		case ClassEquals:
			return AttrAssign
		case ClassSpace:
			return AttrExpectAssign
		}

	case AttrExpectAssign:
		switch class {
		case ClassSpace:
			return AttrExpectAssign
		case ClassEquals:
			return AttrAssign
		}

	case AttrAssign:
		switch class {
		case ClassSpace:
			return AttrAssign
		case ClassSQuote:
			return AttrValSQStart
		case ClassDQuote:
			return AttrValDQStart
		}

	case AttrValSQStart:
		return sqValueTransition(class)
	case AttrValSQ:
		return sqValueTransition(class)
	case AttrValSQEntStart:
		if entityStart(class) {
			return AttrValSQEnt
		}
	case AttrValSQEnt:
		return entCont(class, AttrValSQEnt, AttrValSQ)
	case AttrValSQEnd:
		switch class {
		case ClassGt:
			return ElementEnd
		case ClassSpace:
			return ElementSpace
		case ClassSlash, ClassQMark:
			return ElementEmptyMarker
		}

	case AttrValDQStart:
		return dqValueTransition(class)
	case AttrValDQ:
		return dqValueTransition(class)
	case AttrValDQEntStart:
		if entityStart(class) {
			return AttrValDQEnt
		}
	case AttrValDQEnt:
		return entCont(class, AttrValDQEnt, AttrValDQ)
	case AttrValDQEnd:
		switch class {
		case ClassGt:
			return ElementEnd
		case ClassSpace:
			return ElementSpace
		case ClassSlash, ClassQMark:
			return ElementEmptyMarker
		}

	case ElementEnd, Doctype, CDATA, Comment, XMLDecl:
		// A compound token (doctype/CDATA/comment/XML declaration) always
		// ends at its own terminator and resumes exactly like content
		// immediately following an element's opening tag.
		switch class {
		case ClassLt:
			return ElementOpen
		case ClassAmp, ClassPercent:
			return TextEntStart
		case ClassEOF:
			return EOF
		default:
			return Text
		}

	case Text:
		switch class {
		case ClassLt:
			return ElementOpen
		case ClassAmp, ClassPercent:
			return TextEntStart
		case ClassGt:
			return Unexpected
		case ClassEOF:
			return EOF
		default:
			return Text
		}

	case TextEntStart:
		if entityStart(class) {
			return TextEnt
		}
	case TextEnt:
		return entCont(class, TextEnt, Text)

	case ElementClose:
		if class == ClassNameStart {
			return ElementCloseName
		}

	case ElementCloseName:
		switch class {
		case ClassNameStart, ClassName, ClassDash:
			return ElementCloseName
		case ClassSpace:
			return ElementCloseSpace
		case ClassGt:
			return ElementEnd
		}

	case ElementCloseSpace:
		switch class {
		case ClassSpace:
			return ElementCloseSpace
		case ClassGt:
			return ElementEnd
		}

	case EOF, Unexpected, ParseError:
		panic(fmt.Sprintf("classifier: Transition invoked on terminal state %s", s))

	default:
		panic(fmt.Sprintf("classifier: Transition invoked on unknown state %d", int(s)))
	}

	return Unexpected
}

func sqValueTransition(class CharClass) State {
	switch class {
	case ClassSQuote:
		return AttrValSQEnd
	case ClassAmp, ClassPercent:
		return AttrValSQEntStart
	case ClassLt, ClassEOF:
		return Unexpected
	default:
		return AttrValSQ
	}
}

func dqValueTransition(class CharClass) State {
	switch class {
	case ClassDQuote:
		return AttrValDQEnd
	case ClassAmp, ClassPercent:
		return AttrValDQEntStart
	case ClassLt, ClassEOF:
		return Unexpected
	default:
		return AttrValDQ
	}
}

// RuneEOF is the sentinel rune the lexer feeds to Transition to represent
// legitimate end of input (as opposed to an embedded U+0000, which is a real
// decoded character that also classifies as ClassEOF).
const RuneEOF = runeEOF
