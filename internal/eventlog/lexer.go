package eventlog

import (
	"strings"

	"github.com/pkg/errors"
)

// token is one field of a record: either a quoted string or a bare word such as a number.
type token struct {
	text   string
	quoted bool
}

// lexer splits a single record line into tokens. Quoted strings use a doubled quote for a literal quote.
type lexer struct {
	line []byte
	pos  int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.line) && (l.line[l.pos] == ' ' || l.line[l.pos] == '\t') {
		l.pos++
	}
}

func (l *lexer) done() bool {
	l.skipSpace()
	return l.pos >= len(l.line)
}

// remaining returns an upper bound on the number of tokens left, used to reject absurd counts early.
func (l *lexer) remaining() int {
	return (len(l.line) - l.pos + 1) / 2
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.line) {
		return token{}, errors.Errorf("record ends early at column %d", l.pos+1)
	}
	if l.line[l.pos] != '"' {
		start := l.pos
		for l.pos < len(l.line) && l.line[l.pos] != ' ' && l.line[l.pos] != '\t' {
			if l.line[l.pos] == '"' {
				return token{}, errors.Errorf("unexpected quote at column %d", l.pos+1)
			}
			l.pos++
		}
		return token{text: string(l.line[start:l.pos])}, nil
	}

	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.line) {
		c := l.line[l.pos]
		l.pos++
		if c != '"' {
			sb.WriteByte(c)
			continue
		}
		if l.pos < len(l.line) && l.line[l.pos] == '"' {
			sb.WriteByte('"')
			l.pos++
			continue
		}
		if l.pos < len(l.line) && l.line[l.pos] != ' ' && l.line[l.pos] != '\t' {
			return token{}, errors.Errorf("missing separator after string at column %d", l.pos+1)
		}
		return token{text: sb.String(), quoted: true}, nil
	}
	return token{}, errors.Errorf("unterminated string starting at column %d", start+1)
}

// quote renders s the way the lexer reads it back.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
