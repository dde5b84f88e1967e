package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Lexer tokenizes a query string rune by rune so multi-byte characters in
// summaries and tags are never split mid-codepoint.
type Lexer struct {
	input []rune
	pos   int
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) cur() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func isSegmentCharacter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')'
}

func (l *Lexer) isDigit() bool {
	ch, ok := l.cur()
	return ok && ch >= '0' && ch <= '9'
}

func (l *Lexer) isWordCharacter() bool {
	ch, ok := l.cur()
	return ok && !isSegmentCharacter(ch) && unicode.IsLetter(ch)
}

func (l *Lexer) matchKeyword(word string) bool {
	runes := []rune(word)
	if l.pos+len(runes) > len(l.input) {
		return false
	}
	for i, r := range runes {
		if l.input[l.pos+i] != r {
			return false
		}
	}
	return true
}

func (l *Lexer) readWord(word string) string {
	start := l.pos
	l.pos += len([]rune(word))
	return string(l.input[start:l.pos])
}

func (l *Lexer) readInt() string {
	start := l.pos
	for l.isDigit() {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// isUUID reports whether the next 36 runes form a canonical UUID string.
func (l *Lexer) isUUID() bool {
	if l.pos+36 > len(l.input) {
		return false
	}
	_, err := uuid.Parse(string(l.input[l.pos : l.pos+36]))
	return err == nil
}

func (l *Lexer) readUUID() string {
	s := string(l.input[l.pos : l.pos+36])
	l.pos += 36
	return s
}

// readNextWord consumes runes up to the next segment boundary, '-' or '+'.
func (l *Lexer) readNextWord() string {
	start := l.pos
	for {
		ch, ok := l.cur()
		if !ok || isSegmentCharacter(ch) || ch == '-' || ch == '+' {
			break
		}
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// operatorOrWord reads a keyword that is ambiguous with a plain word: it is
// an operator token only when immediately followed by a segment boundary
// or EOF; otherwise the whole run (including whatever follows) becomes a
// single WordString, mirroring the original's and/or/xor disambiguation.
func (l *Lexer) operatorOrWord(keyword string, opType Type) Token {
	literal := l.readWord(keyword)
	if ch, ok := l.cur(); ok && !isSegmentCharacter(ch) {
		literal += l.readNextWord()
		return Token{Type: WordString, Literal: literal}
	}
	return Token{Type: opType, Literal: literal}
}

// Next returns the next token. Every input tokenizes (text that matches no
// other rule becomes a String token), so the returned error is always nil.
func (l *Lexer) Next() (Token, error) {
	var blanks strings.Builder
	for {
		ch, ok := l.cur()
		if !ok || !unicode.IsSpace(ch) {
			break
		}
		blanks.WriteRune(ch)
		l.pos++
	}
	if blanks.Len() > 0 {
		return Token{Type: Blank, Literal: blanks.String()}, nil
	}

	ch, ok := l.cur()
	if !ok {
		return Token{Type: Eof}, nil
	}

	switch {
	case l.isUUID():
		return Token{Type: Uuid, Literal: l.readUUID()}, nil
	case l.isDigit():
		return Token{Type: Int, Literal: l.readInt()}, nil
	case ch == '+':
		l.pos++
		return Token{Type: TagPlusPrefix, Literal: "+"}, nil
	case ch == '-':
		l.pos++
		return Token{Type: TagMinusPrefix, Literal: "-"}, nil
	case l.matchKeyword("and"):
		return l.operatorOrWord("and", OperatorAnd), nil
	case l.matchKeyword("or"):
		return l.operatorOrWord("or", OperatorOr), nil
	case l.matchKeyword("xor"):
		return l.operatorOrWord("xor", OperatorXor), nil
	case l.matchKeyword("status:"):
		return Token{Type: FilterStatus, Literal: l.readWord("status:")}, nil
	case l.matchKeyword("due.before:"):
		return Token{Type: FilterDateDueBefore, Literal: l.readWord("due.before:")}, nil
	case l.matchKeyword("due.after:"):
		return Token{Type: FilterDateDueAfter, Literal: l.readWord("due.after:")}, nil
	case l.matchKeyword("due:"):
		return Token{Type: FilterDateDue, Literal: l.readWord("due:")}, nil
	case l.matchKeyword("created.after:"):
		return Token{Type: FilterDateCreatedAfter, Literal: l.readWord("created.after:")}, nil
	case l.matchKeyword("created.before:"):
		return Token{Type: FilterDateCreatedBefore, Literal: l.readWord("created.before:")}, nil
	case l.matchKeyword("end.after:"):
		return Token{Type: FilterDateEndAfter, Literal: l.readWord("end.after:")}, nil
	case l.matchKeyword("end.before:"):
		return Token{Type: FilterDateEndBefore, Literal: l.readWord("end.before:")}, nil
	case l.matchKeyword("depends:"):
		return Token{Type: DependsOn, Literal: l.readWord("depends:")}, nil
	case l.matchKeyword("project:"):
		return Token{Type: ProjectPrefix, Literal: l.readWord("project:")}, nil
	case l.matchKeyword("proj:"):
		return Token{Type: ProjectPrefix, Literal: l.readWord("proj:")}, nil
	case ch == ')':
		l.pos++
		return Token{Type: RightParenthesis, Literal: ")"}, nil
	case ch == '(':
		l.pos++
		return Token{Type: LeftParenthesis, Literal: "("}, nil
	case l.isWordCharacter():
		return Token{Type: WordString, Literal: l.readNextWord()}, nil
	default:
		word := l.readNextWord()
		if word == "" {
			// A lone symbol character that is not itself a segment
			// boundary (e.g. a stray punctuation mark): consume it so
			// the lexer always makes forward progress.
			l.pos++
			return Token{Type: String, Literal: string(ch)}, nil
		}
		return Token{Type: String, Literal: word}, nil
	}
}

// Tokenize drains the lexer into a slice. Both the filter and property
// parsers work over this slice, backing up through a cursor where needed.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, fmt.Errorf("lexing %q: %w", input, err)
		}
		out = append(out, tok)
		if tok.Type == Eof {
			return out, nil
		}
	}
}
