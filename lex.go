package quantities

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	// pos and end are the byte offsets of the start and end of the token.
	pos, end int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

func (t lexToken) span() Span {
	return Span{t.pos, t.end}
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenInt is a literal of decimal digits only.
	tokenInt
	// tokenReal is a literal with a fraction or exponent, or an infinity.
	tokenReal
	// tokenIdent is a variable, function, or unit name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenSep is a separator, either , or ;.
	tokenSep
)

var tokennames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenInt:   "Int",
	tokenReal:  "Real",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokennames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokennames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/:^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The bracket at byte position k in OpenBrackets closes with the one at byte
// position k in CloseBrackets. Round brackets group, square brackets hold
// units, and curly brackets hold vectors.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// UnitSymbols contains non-letter runes allowed in names so that units like °
// can be written directly.
const UnitSymbols = "°"

// punct maps each single-rune token to its kind.
var punct = func() map[rune]tokenKind {
	m := map[rune]tokenKind{',': tokenSep, ';': tokenSep}
	for _, r := range Operators {
		m[r] = tokenOp
	}
	for _, r := range OpenBrackets {
		m[r] = tokenOpen
	}
	for _, r := range CloseBrackets {
		m[r] = tokenClose
	}
	return m
}()

func namestart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || strings.ContainsRune(UnitSymbols, r)
}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// off is the byte offset of the next rune. width is the size of the last
	// rune read, or 0 if it was unread.
	off, width int
	p          lexToken
	eof        bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("quantities: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("quantities: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

func (l *lexer) read() (rune, error) {
	r, sz, err := l.src.ReadRune()
	l.off += sz
	l.width = sz
	return r, err
}

// unread backs up one rune. Panics if the source refuses.
func (l *lexer) unread() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.off -= l.width
	l.width = 0
}

// next scans the next token from the input. The first time EOF is encountered
// before any non-whitespace characters, the result is an EOF token with a nil
// error. After that, unless the EOF token is pushed, the result is an empty
// token with io.EOF. Any whitespace rune in wseof also ends the input.
func (l *lexer) next(wseof string) (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.must(), nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		pos := l.off
		r, err := l.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return lexToken{kind: tokenEOF, pos: pos, end: pos}, nil
			}
			return lexToken{pos: pos}, err
		}
		tok := lexToken{pos: pos}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(wseof, r) {
				l.eof = true
				return lexToken{kind: tokenEOF, pos: pos, end: l.off}, nil
			}
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unread()
			tok.kind, err = l.scanNum(pos)
		case namestart(r):
			l.unread()
			if err = l.scanIdent(); err == nil {
				tok.kind = tokenIdent
				if l.buf.String() == "inf" || l.buf.String() == "Inf" {
					tok.kind = tokenReal
				}
			}
		case r == '∞':
			l.buf.WriteRune(r)
			tok.kind = tokenReal
		default:
			k, ok := punct[r]
			// Write the rune either way so that it shows up in errors.
			l.buf.WriteRune(r)
			if !ok {
				return tok, l.error("", pos)
			}
			tok.kind = k
		}
		if err != nil {
			return tok, err
		}
		tok.text = l.buf.String()
		tok.end = l.off
		return tok, nil
	}
}

// Phases of a numeric literal.
const (
	numInt = iota
	numFrac
	numExpSign
	numExp
)

// scanNum scans digits, an optional fraction, and an optional exponent. The
// literal is tokenInt if it is digits only. Any rune other than whitespace or
// punctuation that cannot continue the literal is an error.
func (l *lexer) scanNum(start int) (tokenKind, error) {
	phase := numInt
	mant, exp := 0, 0
scan:
	for {
		r, err := l.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tokenNone, err
		}
		switch {
		case '0' <= r && r <= '9':
			if phase >= numExpSign {
				phase = numExp
				exp++
			} else {
				mant++
			}
		case r == '.' && phase == numInt:
			phase = numFrac
		case (r == 'e' || r == 'E') && phase <= numFrac && mant > 0:
			phase = numExpSign
		case (r == '+' || r == '-') && phase == numExpSign:
			phase = numExp
		case unicode.IsSpace(r), punct[r] != tokenNone:
			l.unread()
			break scan
		default:
			l.buf.WriteRune(r)
			return tokenNone, l.error("number", start)
		}
		l.buf.WriteRune(r)
	}
	switch {
	case mant == 0, phase >= numExpSign && exp == 0:
		return tokenNone, l.error("number", start)
	case phase == numInt:
		return tokenInt, nil
	default:
		return tokenReal, nil
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unread the first rune, so the name is not empty.
				return nil
			}
			return err
		}
		if !namestart(r) && !unicode.IsDigit(r) {
			l.unread()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(kind string, pos int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  pos,
	}
}

// LexError is an invalid token. It implements InputError.
type LexError struct {
	// Text is what was scanned of the token, including the rune that made it
	// invalid.
	Text string
	// Kind is "number" if the token was a numeric literal, otherwise empty.
	Kind string
	// Col is the byte offset of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	what := "token"
	if err.Kind != "" {
		what = err.Kind + " token"
	}
	return errpos(err.Col, "invalid "+what+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
