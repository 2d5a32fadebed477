// Package nquads reads N-Quads documents into store statements.
package nquads

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

// ErrLanguageTag is returned for language-tagged literals, which the literal
// model cannot carry
var ErrLanguageTag = errors.New("language-tagged literals are not supported")

// Statement is one parsed line. Graph is the graph label, empty for the
// default graph; blank graph labels keep their "_:" prefix.
type Statement struct {
	Subject   rdf.Node
	Predicate rdf.Predicate
	Object    rdf.Node
	Graph     string
}

// ParseError reports where in the input parsing stopped
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser is an N-Quads parser that extends N-Triples with an optional 4th position for graphs.
// N-Quads format: <subject> <predicate> <object> [<graph>] .
// PREFIX and BASE directives and prefixed names are accepted as an extension.
type Parser struct {
	input     string
	pos       int
	length    int
	prefixes  map[string]string
	baseIRI   string
	datatypes *rdf.Datatypes
}

// NewParser creates a parser that builds typed literals through datatypes
func NewParser(input string, datatypes *rdf.Datatypes) *Parser {
	return &Parser{
		input:     input,
		length:    len(input),
		prefixes:  make(map[string]string),
		datatypes: datatypes,
	}
}

// Parse parses the whole document
func (p *Parser) Parse() ([]Statement, error) {
	var statements []Statement

	for {
		p.skipWhitespaceAndComments()
		if p.pos >= p.length {
			return statements, nil
		}

		var err error
		switch {
		case p.matchKeyword("@prefix") || p.matchKeyword("PREFIX"):
			err = p.parsePrefix()
		case p.matchKeyword("@base") || p.matchKeyword("BASE"):
			err = p.parseBase()
		default:
			var st Statement
			st, err = p.parseStatement()
			if err == nil {
				statements = append(statements, st)
			}
		}
		if err != nil {
			return nil, &ParseError{Line: p.line(), Err: err}
		}
	}
}

func (p *Parser) line() int {
	return strings.Count(p.input[:min(p.pos, p.length)], "\n") + 1
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < p.length {
		ch := p.input[p.pos]
		if isSpace(ch) {
			p.pos++
			continue
		}
		if ch == '#' {
			for p.pos < p.length && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		break
	}
}

// matchKeyword reports whether keyword, followed by whitespace, starts at the current position
func (p *Parser) matchKeyword(keyword string) bool {
	end := p.pos + len(keyword)
	if end > p.length || !strings.EqualFold(p.input[p.pos:end], keyword) {
		return false
	}
	return end == p.length || isSpace(p.input[end])
}

func (p *Parser) skipKeyword() {
	for p.pos < p.length && !isSpace(p.input[p.pos]) {
		p.pos++
	}
	p.skipWhitespaceAndComments()
}

// skipDirectiveEnd consumes the '.' that ends a Turtle-style directive
func (p *Parser) skipDirectiveEnd() {
	p.skipWhitespaceAndComments()
	if p.pos < p.length && p.input[p.pos] == '.' {
		p.pos++
	}
}

func (p *Parser) parsePrefix() error {
	p.skipKeyword()

	start := p.pos
	for p.pos < p.length && p.input[p.pos] != ':' {
		p.pos++
	}
	if p.pos >= p.length {
		return fmt.Errorf("expected ':' after prefix name")
	}
	name := strings.TrimSpace(p.input[start:p.pos])
	p.pos++

	p.skipWhitespaceAndComments()
	iri, err := p.parseIRI()
	if err != nil {
		return fmt.Errorf("prefix %q: %w", name, err)
	}
	p.prefixes[name] = iri

	p.skipDirectiveEnd()
	return nil
}

func (p *Parser) parseBase() error {
	p.skipKeyword()

	iri, err := p.parseIRI()
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}
	p.baseIRI = iri

	p.skipDirectiveEnd()
	return nil
}

// parseStatement parses: subject predicate object [graph] .
func (p *Parser) parseStatement() (Statement, error) {
	var st Statement

	subject, err := p.parseNode()
	if err != nil {
		return st, fmt.Errorf("subject: %w", err)
	}
	if subject.Type() == rdf.NodeTypeLiteral {
		return st, fmt.Errorf("subject: literal not allowed")
	}
	p.skipWhitespaceAndComments()

	predicate, err := p.parseNode()
	if err != nil {
		return st, fmt.Errorf("predicate: %w", err)
	}
	iri, ok := predicate.IRI()
	if !ok {
		return st, fmt.Errorf("predicate: must be an IRI, got %s", predicate)
	}
	p.skipWhitespaceAndComments()

	object, err := p.parseNode()
	if err != nil {
		return st, fmt.Errorf("object: %w", err)
	}
	p.skipWhitespaceAndComments()

	if p.pos < p.length && p.input[p.pos] != '.' {
		st.Graph, err = p.parseGraphLabel()
		if err != nil {
			return st, fmt.Errorf("graph: %w", err)
		}
		p.skipWhitespaceAndComments()
	}

	if p.pos >= p.length || p.input[p.pos] != '.' {
		return st, fmt.Errorf("expected '.' at end of statement")
	}
	p.pos++

	st.Subject = subject
	st.Predicate = rdf.Predicate{IRI: iri}
	st.Object = object
	return st, nil
}

func (p *Parser) parseGraphLabel() (string, error) {
	if p.input[p.pos] == '_' {
		label, err := p.parseBlankLabel()
		if err != nil {
			return "", err
		}
		return "_:" + label, nil
	}
	node, err := p.parseNode()
	if err != nil {
		return "", err
	}
	iri, ok := node.IRI()
	if !ok {
		return "", fmt.Errorf("must be an IRI or blank node, got %s", node)
	}
	return iri.IRI, nil
}

// parseNode parses an IRI, prefixed name, blank node or literal
func (p *Parser) parseNode() (rdf.Node, error) {
	if p.pos >= p.length {
		return rdf.Node{}, fmt.Errorf("unexpected end of input")
	}

	ch := p.input[p.pos]
	switch {
	case ch == '<':
		iri, err := p.parseIRI()
		if err != nil {
			return rdf.Node{}, err
		}
		return rdf.NewIRINode(iri), nil
	case ch == '_':
		// Labels are not kept: every blank node is the same term.
		if _, err := p.parseBlankLabel(); err != nil {
			return rdf.Node{}, err
		}
		return rdf.NewBlankNode(), nil
	case ch == '"':
		return p.parseLiteral()
	case ch == '-' || ch == '+' || (ch >= '0' && ch <= '9'):
		return p.parseNumber()
	case p.matchBoolean("true"):
		return p.typedLiteral(rdf.XSDBoolean, "true")
	case p.matchBoolean("false"):
		return p.typedLiteral(rdf.XSDBoolean, "false")
	case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == ':':
		return p.parsePrefixedName()
	default:
		return rdf.Node{}, fmt.Errorf("unexpected character %q", ch)
	}
}

func (p *Parser) matchBoolean(word string) bool {
	end := p.pos + len(word)
	if end > p.length || p.input[p.pos:end] != word {
		return false
	}
	return end == p.length || isSpace(p.input[end]) || p.input[end] == '.'
}

// parseIRI parses an IRI enclosed in < > and resolves it against the base
func (p *Parser) parseIRI() (string, error) {
	if p.pos >= p.length || p.input[p.pos] != '<' {
		return "", fmt.Errorf("expected '<' at start of IRI")
	}
	p.pos++

	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return "", fmt.Errorf("unclosed IRI")
	}
	iri := p.input[p.pos : p.pos+end]
	p.pos += end + 1

	return p.resolve(iri), nil
}

// resolve prefixes relative IRIs with the base IRI
func (p *Parser) resolve(iri string) string {
	if p.baseIRI == "" || strings.Contains(iri, ":") {
		return iri
	}
	return p.baseIRI + iri
}

func (p *Parser) parseBlankLabel() (string, error) {
	if !strings.HasPrefix(p.input[p.pos:], "_:") {
		return "", fmt.Errorf("expected '_:' at start of blank node")
	}
	p.pos += 2

	start := p.pos
	for p.pos < p.length {
		ch := p.input[p.pos]
		if isSpace(ch) || ch == '<' || ch == '"' {
			break
		}
		// A trailing '.' ends the statement rather than the label.
		if ch == '.' && (p.pos+1 >= p.length || isSpace(p.input[p.pos+1])) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("empty blank node label")
	}
	return p.input[start:p.pos], nil
}

func (p *Parser) parseLiteral() (rdf.Node, error) {
	p.pos++ // opening '"'

	var value strings.Builder
	for {
		if p.pos >= p.length {
			return rdf.Node{}, fmt.Errorf("unclosed string literal")
		}
		ch := p.input[p.pos]
		if ch == '"' {
			p.pos++
			break
		}
		if ch != '\\' {
			value.WriteByte(ch)
			p.pos++
			continue
		}
		if err := p.parseEscape(&value); err != nil {
			return rdf.Node{}, err
		}
	}

	if p.pos < p.length && p.input[p.pos] == '@' {
		return rdf.Node{}, ErrLanguageTag
	}

	if strings.HasPrefix(p.input[p.pos:], "^^") {
		p.pos += 2
		var datatype string
		var err error
		if p.pos < p.length && p.input[p.pos] == '<' {
			datatype, err = p.parseIRI()
		} else {
			var node rdf.Node
			node, err = p.parsePrefixedName()
			if iri, ok := node.IRI(); ok {
				datatype = iri.IRI
			}
		}
		if err != nil {
			return rdf.Node{}, fmt.Errorf("datatype: %w", err)
		}
		return p.typedLiteral(datatype, value.String())
	}

	return p.typedLiteral(rdf.XSDString, value.String())
}

// parseEscape decodes one backslash escape into value
func (p *Parser) parseEscape(value *strings.Builder) error {
	p.pos++ // '\'
	if p.pos >= p.length {
		return fmt.Errorf("unexpected end of input in escape sequence")
	}

	ch := p.input[p.pos]
	p.pos++
	switch ch {
	case 'n':
		value.WriteByte('\n')
	case 't':
		value.WriteByte('\t')
	case 'r':
		value.WriteByte('\r')
	case 'b':
		value.WriteByte('\b')
	case 'f':
		value.WriteByte('\f')
	case '"', '\'', '\\':
		value.WriteByte(ch)
	case 'u', 'U':
		width := 4
		if ch == 'U' {
			width = 8
		}
		if p.pos+width > p.length {
			return fmt.Errorf("truncated \\%c escape", ch)
		}
		code, err := strconv.ParseUint(p.input[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return fmt.Errorf("invalid \\%c escape: %w", ch, err)
		}
		value.WriteRune(rune(code))
		p.pos += width
	default:
		return fmt.Errorf("unknown escape \\%c", ch)
	}
	return nil
}

func (p *Parser) typedLiteral(datatype, lexical string) (rdf.Node, error) {
	lit, err := p.datatypes.ParseLexical(datatype, lexical)
	if err != nil {
		return rdf.Node{}, err
	}
	return rdf.NewLiteralNode(lit), nil
}

// parseNumber parses a bare integer or double
func (p *Parser) parseNumber() (rdf.Node, error) {
	start := p.pos
	digits := func() bool {
		from := p.pos
		for p.pos < p.length && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		return p.pos > from
	}

	if p.input[p.pos] == '-' || p.input[p.pos] == '+' {
		p.pos++
	}
	hasDigits := digits()

	isDouble := false
	// A '.' only belongs to the number when a digit follows it.
	if p.pos+1 < p.length && p.input[p.pos] == '.' && p.input[p.pos+1] >= '0' && p.input[p.pos+1] <= '9' {
		isDouble = true
		p.pos++
		hasDigits = digits() || hasDigits
	}
	if hasDigits && p.pos < p.length && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		isDouble = true
		p.pos++
		if p.pos < p.length && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
			p.pos++
		}
		if !digits() {
			return rdf.Node{}, fmt.Errorf("invalid exponent in %q", p.input[start:p.pos])
		}
	}

	if !hasDigits {
		return rdf.Node{}, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}

	lexical := strings.TrimPrefix(p.input[start:p.pos], "+")
	if isDouble {
		return p.typedLiteral(rdf.XSDDouble, lexical)
	}
	return p.typedLiteral(rdf.XSDInteger, lexical)
}

// parsePrefixedName parses a prefixed name such as ex:foo
func (p *Parser) parsePrefixedName() (rdf.Node, error) {
	start := p.pos
	for p.pos < p.length && p.input[p.pos] != ':' {
		if isSpace(p.input[p.pos]) || p.input[p.pos] == '.' {
			return rdf.Node{}, fmt.Errorf("invalid prefixed name %q", p.input[start:p.pos])
		}
		p.pos++
	}
	if p.pos >= p.length {
		return rdf.Node{}, fmt.Errorf("expected ':' in prefixed name")
	}
	prefix := p.input[start:p.pos]
	p.pos++

	localStart := p.pos
	for p.pos < p.length {
		ch := p.input[p.pos]
		if isSpace(ch) || ch == '<' || ch == '>' || ch == '"' {
			break
		}
		if ch == '.' && (p.pos+1 >= p.length || isSpace(p.input[p.pos+1])) {
			break
		}
		p.pos++
	}

	ns, ok := p.prefixes[prefix]
	if !ok {
		return rdf.Node{}, fmt.Errorf("undefined prefix: %s", prefix)
	}
	return rdf.NewIRINode(ns + p.input[localStart:p.pos]), nil
}
