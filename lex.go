package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
)

type lexToken struct {
	r    rune
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	if t.kind == tokenEOF {
		return t.kind.String() + "@" + strconv.Itoa(t.pos)
	}
	return t.kind.String() + ":" + string(t.r) + "@" + strconv.Itoa(t.pos)
}

// text returns the token as it appears in error messages.
func (t lexToken) text() string {
	if t.kind == tokenEOF {
		return ""
	}
	return string(t.r)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input. It is never queued, only
	// returned once the queue is empty.
	tokenEOF
	// tokenAtom is a digit or an ASCII letter.
	tokenAtom
	// tokenOp is any other non-whitespace rune, brackets included.
	tokenOp
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenAtom:
		return "Atom"
	case tokenOp:
		return "Op"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Whitespace contains the runes dropped by the lexer.
const Whitespace = " \t\n\f\r"

func isspace(r rune) bool {
	return strings.ContainsRune(Whitespace, r)
}

func isatom(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isletter(r rune) bool {
	return isatom(r) && !isdigit(r)
}

type lexer struct {
	toks deque.Deque
	// end is the column just past the last rune scanned, used for EOF.
	end int
}

// lex scans all of src into a token queue. The only possible error is a read
// error from src other than io.EOF.
func lex(src io.RuneScanner) (*lexer, error) {
	l := lexer{toks: deque.NewDeque(), end: 1}
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &l, nil
			}
			return nil, err
		}
		pos := l.end
		l.end++
		switch {
		case isspace(r):
			continue
		case isatom(r):
			l.toks.PushBack(lexToken{r: r, kind: tokenAtom, pos: pos})
		default:
			l.toks.PushBack(lexToken{r: r, kind: tokenOp, pos: pos})
		}
	}
}

// next removes and returns the front token, or an EOF token if there are none
// left.
func (l *lexer) next() lexToken {
	if l.toks.Len() == 0 {
		return lexToken{kind: tokenEOF, pos: l.end}
	}
	return l.toks.PopFront().(lexToken)
}

// peek returns the front token without removing it.
func (l *lexer) peek() lexToken {
	if l.toks.Len() == 0 {
		return lexToken{kind: tokenEOF, pos: l.end}
	}
	return l.toks.Front().(lexToken)
}
