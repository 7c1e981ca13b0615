package bibtex

import (
	"fmt"
	"io"
	"strings"

	"bibforge/core/record"
)

// Parse reads every entry from r. source is only used in error messages.
func Parse(r io.Reader, source string) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	p := &parser{
		src:    data,
		source: source,
		line:   1,
		macros: make(map[string]string),
	}
	return p.parse()
}

type parser struct {
	src    []byte
	pos    int
	line   int
	source string
	macros map[string]string
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Source: p.source, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.next()
	}
}

func (p *parser) parse() ([]record.Record, error) {
	var recs []record.Record
	for {
		// Anything between entries is free text.
		for !p.eof() && p.peek() != '@' {
			p.next()
		}
		if p.eof() {
			return recs, nil
		}
		p.next()

		p.skipSpace()
		kind := p.name()
		p.skipSpace()

		// An '@' not followed by name and opener is free text, e.g. an email address.
		if kind == "" || p.eof() || (p.peek() != '{' && p.peek() != '(') {
			continue
		}

		switch strings.ToLower(kind) {
		case "comment", "preamble":
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
		case "string":
			if err := p.parseMacro(); err != nil {
				return nil, err
			}
		default:
			rec, err := p.parseEntry(kind)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	}
}

// name reads an identifier: entry types, keys of fields and macro names.
func (p *parser) name() string {
	start := p.pos
	for !p.eof() && isNameByte(p.peek()) {
		p.next()
	}
	return string(p.src[start:p.pos])
}

func closer(open byte) byte {
	if open == '(' {
		return ')'
	}
	return '}'
}

// skipBlock consumes a balanced {...} or (...) block starting at the opener.
func (p *parser) skipBlock() error {
	open := p.next()
	end := closer(open)
	startLine := p.line
	depth := 1
	for !p.eof() {
		c := p.next()
		switch {
		case c == open:
			depth++
		case c == end:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return &ParseError{Source: p.source, Line: startLine, Msg: "unterminated block"}
}

func (p *parser) parseMacro() error {
	end := closer(p.next())
	p.skipSpace()
	name := p.name()
	if name == "" {
		return p.errorf("missing @string name")
	}
	p.skipSpace()
	if p.eof() || p.peek() != '=' {
		return p.errorf("expected '=' after @string name %q", name)
	}
	p.next()
	value, err := p.value()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.eof() || p.peek() != end {
		return p.errorf("expected %q to close @string %q", end, name)
	}
	p.next()
	p.macros[strings.ToLower(name)] = value
	return nil
}

func (p *parser) parseEntry(kind string) (record.Record, error) {
	startLine := p.line
	end := closer(p.next())
	p.skipSpace()

	start := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != end && !isSpace(p.peek()) {
		p.next()
	}
	key := string(p.src[start:p.pos])
	p.skipSpace()

	fields := []record.Field{
		{Name: record.TypeField, Value: strings.ToLower(kind)},
		{Name: record.KeyField, Value: key},
	}

	for {
		if p.eof() {
			return record.Record{}, &ParseError{Source: p.source, Line: startLine, Msg: fmt.Sprintf("unterminated entry %q", key)}
		}
		switch p.peek() {
		case end:
			p.next()
			return record.New(fields...), nil
		case ',':
			p.next()
			p.skipSpace()
			continue
		}

		name := p.name()
		if name == "" {
			return record.Record{}, p.errorf("unexpected %q in entry %q", p.peek(), key)
		}
		p.skipSpace()
		if p.eof() || p.peek() != '=' {
			return record.Record{}, p.errorf("expected '=' after field %q in entry %q", name, key)
		}
		p.next()

		value, err := p.value()
		if err != nil {
			return record.Record{}, err
		}
		fields = append(fields, record.Field{Name: name, Value: value})

		p.skipSpace()
		if !p.eof() && p.peek() != ',' && p.peek() != end {
			return record.Record{}, p.errorf("expected ',' after field %q in entry %q", name, key)
		}
	}
}

// value reads one or more '#'-joined value parts.
func (p *parser) value() (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", p.errorf("missing value")
		}

		var part string
		var err error
		switch c := p.peek(); {
		case c == '{':
			part, err = p.braced()
		case c == '"':
			part, err = p.quoted()
		case isDigit(c):
			part = p.number()
		case isNameByte(c):
			name := p.name()
			if v, ok := p.macros[strings.ToLower(name)]; ok {
				part = v
			} else {
				part = name
			}
		default:
			return "", p.errorf("unexpected %q in value", c)
		}
		if err != nil {
			return "", err
		}
		b.WriteString(part)

		p.skipSpace()
		if p.eof() || p.peek() != '#' {
			return collapseSpace(b.String()), nil
		}
		p.next()
	}
}

func (p *parser) braced() (string, error) {
	startLine := p.line
	p.next()
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.next() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(p.src[start : p.pos-1]), nil
			}
		}
	}
	return "", &ParseError{Source: p.source, Line: startLine, Msg: "unterminated braced value"}
}

func (p *parser) quoted() (string, error) {
	startLine := p.line
	p.next()
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.next() {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return "", p.errorf("unbalanced '}' in quoted value")
			}
			depth--
		case '"':
			if depth == 0 {
				return string(p.src[start : p.pos-1]), nil
			}
		}
	}
	return "", &ParseError{Source: p.source, Line: startLine, Msg: "unterminated quoted value"}
}

func (p *parser) number() string {
	start := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.next()
	}
	return string(p.src[start:p.pos])
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameByte(c byte) bool {
	if isSpace(c) {
		return false
	}
	switch c {
	case '{', '}', '(', ')', ',', '=', '"', '#', '%', '\'', '@':
		return false
	}
	return true
}
