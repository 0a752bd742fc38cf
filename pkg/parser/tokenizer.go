package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Tokenizer is the cursor the parser drives. It starts on a BOF token and
// owns the positional variable counter for the current input.
//
// A Tokenizer holds per-input state and must not be shared between
// goroutines.
type Tokenizer struct {
	input      string
	lexer      *Lexer
	cur        token.Token
	peek       *token.Token
	peekErr    error
	positional int
}

// NewTokenizer creates a Tokenizer positioned at BOF of input.
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{}
	t.SetInput(input)
	return t
}

// SetInput replaces the input, rewinds to BOF and resets the positional
// variable counter.
func (t *Tokenizer) SetInput(input string) {
	t.input = input
	t.lexer = NewLexer(input)
	t.cur = token.Token{Type: token.BOF}
	t.peek = nil
	t.peekErr = nil
	t.positional = 0
}

// Input returns the text being tokenized.
func (t *Tokenizer) Input() string {
	return t.input
}

// Current returns the current token without consuming it.
func (t *Tokenizer) Current() token.Token {
	return t.cur
}

// Next advances to the following token.
func (t *Tokenizer) Next() error {
	if t.cur.Type == token.EOF {
		return nil
	}
	if t.peek != nil || t.peekErr != nil {
		tok, err := t.peek, t.peekErr
		t.peek, t.peekErr = nil, nil
		if err != nil {
			return err
		}
		t.cur = *tok
		return nil
	}
	tok, err := t.lexer.NextToken()
	if err != nil {
		return err
	}
	t.cur = tok
	return nil
}

// Peek returns the token after the current one without consuming anything.
func (t *Tokenizer) Peek() (token.Token, error) {
	if t.cur.Type == token.EOF {
		return t.cur, nil
	}
	if t.peek == nil && t.peekErr == nil {
		tok, err := t.lexer.NextToken()
		if err != nil {
			t.peekErr = err
		} else {
			t.peek = &tok
		}
	}
	if t.peekErr != nil {
		return token.Token{}, t.peekErr
	}
	return *t.peek, nil
}

// Expect consumes the current token if it has type tt and returns it.
// Otherwise it fails with a *ParseError naming the expected and actual
// tokens.
func (t *Tokenizer) Expect(tt token.TokenType) (token.Token, error) {
	tok := t.cur
	if tok.Type != tt {
		return tok, t.errorf(fmt.Sprintf(ErrUnexpectedToken, tok, tt))
	}
	return tok, t.Next()
}

// NextPositional returns the index for the next ? placeholder.
func (t *Tokenizer) NextPositional() int {
	i := t.positional
	t.positional++
	return i
}

// errorf builds a *ParseError at the current token.
func (t *Tokenizer) errorf(msg string) *ParseError {
	return &ParseError{Pos: t.cur.Pos, Token: t.cur, Message: msg, Input: t.input}
}

// Tokenize returns all tokens of input, ending with EOF.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
