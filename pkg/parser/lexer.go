package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/leapstack-labs/leapsoql/pkg/token"
)

var (
	dateShape     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeShape = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(\d{2}:\d{2}:\d{2})(\.\d+)?(Z|[+-]\d{2}:?\d{2})$`)
)

// Lexer scans raw query text into tokens. It knows nothing about the
// grammar; see Tokenizer for the cursor the parser consumes.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekCharAt(0)
}

func (l *Lexer) peekCharAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) errorf(pos token.Position, msg string) *LexError {
	return &LexError{Pos: pos, Message: msg, Input: l.input}
}

// NextToken returns the next token, or a *LexError for malformed input.
// Once the input is exhausted it keeps returning EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	pos := l.currentPos()
	tok := token.Token{Pos: pos}

	switch l.ch {
	case 0:
		if l.pos < len(l.input) {
			return tok, l.errorf(pos, fmt.Sprintf(ErrUnexpectedChar, "\x00"))
		}
		tok.Type = token.EOF
		return tok, nil
	case ',':
		tok = l.single(token.COMMA)
	case '(':
		tok = l.single(token.LPAREN)
	case ')':
		tok = l.single(token.RPAREN)
	case ':':
		tok = l.single(token.COLON)
	case '?':
		tok = l.single(token.QUESTION)
	case '=':
		tok = l.single(token.EQ)
	case '!':
		if l.peekChar() != '=' {
			return tok, l.errorf(pos, fmt.Sprintf(ErrUnexpectedChar, "!"))
		}
		l.readChar()
		tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.single(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.single(token.GT)
		}
	case '\'':
		s, err := l.readString(pos)
		if err != nil {
			return tok, err
		}
		tok.Type = token.STRING
		tok.Literal = s
		return tok, nil
	case '-':
		if !isDigit(l.peekChar()) {
			return tok, l.errorf(pos, fmt.Sprintf(ErrUnexpectedChar, "-"))
		}
		l.readChar()
		tok.Type = token.NUMBER
		tok.Literal = "-" + l.readNumber()
		return tok, nil
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = token.IDENT
			if !strings.Contains(tok.Literal, ".") {
				tok.Type = token.LookupIdent(tok.Literal)
			}
			return tok, nil
		case isDigit(l.ch):
			if l.atDate() {
				return l.readDate(pos)
			}
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			return tok, nil
		default:
			return tok, l.errorf(pos, fmt.Sprintf(ErrUnexpectedChar, string(l.ch)))
		}
	}

	l.readChar()
	return tok, nil
}

// single creates a one-character token at the current position.
func (l *Lexer) single(t token.TokenType) token.Token {
	return token.Token{Type: t, Literal: string(l.ch), Pos: l.currentPos()}
}

// skipWhitespaceAndComments skips whitespace, -- line comments and
// /* */ block comments.
func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			start := l.currentPos()
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			for {
				if l.ch == 0 {
					return l.errorf(start, ErrUnterminatedComment)
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip '*'
					l.readChar() // skip '/'
					break
				}
				l.readChar()
			}
			continue
		}

		return nil
	}
}

// readString reads a single-quoted string literal and decodes backslash
// escapes. \\, \_ and \% are kept as written so a LIKE pattern keeps an
// escaped backslash apart from an escaped wildcard.
func (l *Lexer) readString(start token.Position) (string, error) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch l.ch {
		case 0:
			return "", l.errorf(start, ErrUnterminatedString)
		case '\'':
			l.readChar() // skip closing quote
			return result.String(), nil
		case '\\':
			escPos := l.currentPos()
			l.readChar()
			switch l.ch {
			case '\'', '"':
				result.WriteByte(l.ch)
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case 'b':
				result.WriteByte('\b')
			case 'f':
				result.WriteByte('\f')
			case '\\', '_', '%':
				result.WriteByte('\\')
				result.WriteByte(l.ch)
			case 0:
				return "", l.errorf(start, ErrUnterminatedString)
			default:
				return "", l.errorf(escPos, fmt.Sprintf(ErrInvalidEscape, l.ch))
			}
			l.readChar()
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readIdentifier reads a name or dotted path such as Account.Owner.Name.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads an unsigned integer or decimal.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// atDate reports whether the input at the cursor starts with four digits
// followed by '-' and a digit.
func (l *Lexer) atDate() bool {
	for i := 0; i < 3; i++ {
		if !isDigit(l.peekCharAt(i)) {
			return false
		}
	}
	return l.peekCharAt(3) == '-' && isDigit(l.peekCharAt(4))
}

// readDate reads a date or datetime literal and validates its shape.
func (l *Lexer) readDate(pos token.Position) (token.Token, error) {
	start := l.pos
	for isDigit(l.ch) || isLetter(l.ch) || l.ch == '-' || l.ch == ':' || l.ch == '.' || l.ch == '+' {
		l.readChar()
	}
	text := l.input[start:l.pos]

	if dateShape.MatchString(text) {
		if _, err := time.Parse(time.DateOnly, text); err != nil {
			return token.Token{}, l.errorf(pos, fmt.Sprintf(ErrInvalidDate, text))
		}
		return token.Token{Type: token.DATE, Literal: text, Pos: pos}, nil
	}
	if m := dateTimeShape.FindStringSubmatch(text); m != nil {
		_, dErr := time.Parse(time.DateOnly, m[1])
		_, tErr := time.Parse(time.TimeOnly, m[2])
		if dErr == nil && tErr == nil {
			return token.Token{Type: token.DATETIME, Literal: text, Pos: pos}, nil
		}
	}
	return token.Token{}, l.errorf(pos, fmt.Sprintf(ErrInvalidDate, text))
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
