package layout

import (
	"fmt"
	"strings"
)

// The layout engine hands back DOT text annotated with drawing attributes.
// This file parses just enough of the DOT grammar to pull out what the
// loader needs: the graph-level attributes (notably bb), every node with
// its attribute map, and every edge with its endpoint names and attribute
// map. Defaults (node [...] / edge [...]) are skipped; the engine writes
// drawing attributes onto each element directly.

// dotNode is one node statement with its merged attributes.
type dotNode struct {
	name  string
	attrs map[string]string
}

// dotEdge is one edge of an edge statement. Chains (a -> b -> c) expand
// into one dotEdge per hop, all sharing the statement's attributes.
type dotEdge struct {
	tail, head string
	attrs      map[string]string
}

// dotFile is the parsed document. Nodes keep statement order and are
// merged by name; graph attributes come from the outermost graph only,
// so a cluster's bb never shadows the root bounding box.
type dotFile struct {
	attrs map[string]string
	nodes []*dotNode
	edges []*dotEdge
}

// parseDot parses annotated DOT text.
func parseDot(src string) (*dotFile, error) {
	p := &dotParser{
		scan:   &dotScanner{src: src},
		file:   &dotFile{attrs: map[string]string{}},
		byName: map[string]*dotNode{},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.file, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokID
	tokEdgeOp
	tokPunct
)

type dotToken struct {
	kind tokenKind
	text string
}

// dotScanner tokenizes DOT text. Quoted values are unquoted here:
// backslash-newline continuations are removed and escaped quotes become
// plain quotes, while every other backslash escape passes through
// untouched for the drawing-directive interpreter to handle.
type dotScanner struct {
	src string
	pos int
}

func (s *dotScanner) next() (dotToken, error) {
	s.skipBlank()
	if s.pos >= len(s.src) {
		return dotToken{kind: tokEOF}, nil
	}
	c := s.src[s.pos]
	switch {
	case strings.IndexByte("{}[];,=:", c) >= 0:
		s.pos++
		return dotToken{kind: tokPunct, text: string(c)}, nil
	case c == '-' && s.pos+1 < len(s.src) && (s.src[s.pos+1] == '>' || s.src[s.pos+1] == '-'):
		s.pos += 2
		return dotToken{kind: tokEdgeOp, text: s.src[s.pos-2 : s.pos]}, nil
	case c == '"':
		return s.quoted()
	case c == '<':
		return s.htmlString()
	default:
		return s.ident()
	}
}

func (s *dotScanner) skipBlank() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
			s.skipTo("\n")
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
			s.pos += 2
			s.skipTo("*/")
		case c == '#':
			s.skipTo("\n")
		default:
			return
		}
	}
}

func (s *dotScanner) skipTo(marker string) {
	if i := strings.Index(s.src[s.pos:], marker); i >= 0 {
		s.pos += i + len(marker)
	} else {
		s.pos = len(s.src)
	}
}

func (s *dotScanner) quoted() (dotToken, error) {
	s.pos++ // opening quote
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			// Concatenation: "a" + "b"
			save := s.pos
			s.skipBlank()
			if s.pos < len(s.src) && s.src[s.pos] == '+' {
				s.pos++
				s.skipBlank()
				if s.pos < len(s.src) && s.src[s.pos] == '"' {
					rest, err := s.quoted()
					if err != nil {
						return dotToken{}, err
					}
					b.WriteString(rest.text)
					return dotToken{kind: tokID, text: b.String()}, nil
				}
			}
			s.pos = save
			return dotToken{kind: tokID, text: b.String()}, nil
		case '\\':
			if s.pos+1 >= len(s.src) {
				return dotToken{}, fmt.Errorf("unterminated string at offset %d", s.pos)
			}
			switch s.src[s.pos+1] {
			case '\n':
				s.pos += 2 // line continuation
			case '"':
				b.WriteByte('"')
				s.pos += 2
			default:
				b.WriteByte('\\')
				b.WriteByte(s.src[s.pos+1])
				s.pos += 2
			}
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return dotToken{}, fmt.Errorf("unterminated string at offset %d", s.pos)
}

// htmlString consumes a <...> value, tracking nesting depth. The loader
// has no use for HTML labels, but they must tokenize cleanly.
func (s *dotScanner) htmlString() (dotToken, error) {
	start := s.pos
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				s.pos++
				return dotToken{kind: tokID, text: s.src[start:s.pos]}, nil
			}
		}
		s.pos++
	}
	return dotToken{}, fmt.Errorf("unterminated HTML string at offset %d", start)
}

func (s *dotScanner) ident() (dotToken, error) {
	start := s.pos
	// Numerals may carry a leading sign; names never contain one.
	if s.src[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start || (s.pos == start+1 && s.src[start] == '-') {
		return dotToken{}, fmt.Errorf("unexpected character %q at offset %d", s.src[start], start)
	}
	return dotToken{kind: tokID, text: s.src[start:s.pos]}, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') || c >= 0x80
}

type dotParser struct {
	scan   *dotScanner
	tok    dotToken
	file   *dotFile
	byName map[string]*dotNode
}

func (p *dotParser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *dotParser) expectPunct(text string) error {
	if p.tok.kind != tokPunct || p.tok.text != text {
		return fmt.Errorf("expected %q, got %q", text, p.tok.text)
	}
	return p.advance()
}

func (p *dotParser) parse() error {
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind == tokID && strings.EqualFold(p.tok.text, "strict") {
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.tok.kind != tokID ||
		(!strings.EqualFold(p.tok.text, "digraph") && !strings.EqualFold(p.tok.text, "graph")) {
		return fmt.Errorf("expected graph or digraph, got %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return err
	}
	// Optional graph name
	if p.tok.kind == tokID {
		if err := p.advance(); err != nil {
			return err
		}
	}
	if err := p.expectPunct("{"); err != nil {
		return err
	}
	if err := p.stmtList(0); err != nil {
		return err
	}
	return p.expectPunct("}")
}

func (p *dotParser) stmtList(depth int) error {
	for {
		switch {
		case p.tok.kind == tokEOF:
			return fmt.Errorf("unexpected end of input")
		case p.tok.kind == tokPunct && p.tok.text == "}":
			return nil
		case p.tok.kind == tokPunct && p.tok.text == ";":
			if err := p.advance(); err != nil {
				return err
			}
		case p.tok.kind == tokPunct && p.tok.text == "{":
			if err := p.subgraph(depth); err != nil {
				return err
			}
		case p.tok.kind == tokID && strings.EqualFold(p.tok.text, "subgraph"):
			if err := p.advance(); err != nil {
				return err
			}
			// Optional subgraph name
			if p.tok.kind == tokID {
				if err := p.advance(); err != nil {
					return err
				}
			}
			if err := p.subgraph(depth); err != nil {
				return err
			}
		case p.tok.kind == tokID:
			if err := p.statement(depth); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected token %q", p.tok.text)
		}
	}
}

func (p *dotParser) subgraph(depth int) error {
	if err := p.expectPunct("{"); err != nil {
		return err
	}
	if err := p.stmtList(depth + 1); err != nil {
		return err
	}
	return p.expectPunct("}")
}

func (p *dotParser) statement(depth int) error {
	keyword := strings.ToLower(p.tok.text)
	switch keyword {
	case "graph":
		if err := p.advance(); err != nil {
			return err
		}
		attrs, err := p.attrList()
		if err != nil {
			return err
		}
		// Cluster attributes stay local; only the root bb matters.
		if depth == 0 {
			for k, v := range attrs {
				p.file.attrs[k] = v
			}
		}
		return nil
	case "node", "edge":
		if err := p.advance(); err != nil {
			return err
		}
		_, err := p.attrList()
		return err
	}

	name, err := p.nodeID()
	if err != nil {
		return err
	}

	// Top-level attribute assignment: rankdir=LR
	if p.tok.kind == tokPunct && p.tok.text == "=" {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokID {
			return fmt.Errorf("expected attribute value, got %q", p.tok.text)
		}
		if depth == 0 {
			p.file.attrs[name] = p.tok.text
		}
		return p.advance()
	}

	// Edge statement, possibly chained
	if p.tok.kind == tokEdgeOp {
		names := []string{name}
		for p.tok.kind == tokEdgeOp {
			if err := p.advance(); err != nil {
				return err
			}
			next, err := p.nodeID()
			if err != nil {
				return err
			}
			names = append(names, next)
		}
		attrs, err := p.optionalAttrList()
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(names); i++ {
			p.file.edges = append(p.file.edges, &dotEdge{
				tail:  names[i],
				head:  names[i+1],
				attrs: attrs,
			})
		}
		return nil
	}

	// Node statement
	attrs, err := p.optionalAttrList()
	if err != nil {
		return err
	}
	if n, ok := p.byName[name]; ok {
		for k, v := range attrs {
			n.attrs[k] = v
		}
		return nil
	}
	n := &dotNode{name: name, attrs: attrs}
	p.byName[name] = n
	p.file.nodes = append(p.file.nodes, n)
	return nil
}

// nodeID reads a node name and strips any port or compass suffix, so
// a:out:se and a refer to the same node.
func (p *dotParser) nodeID() (string, error) {
	if p.tok.kind != tokID {
		return "", fmt.Errorf("expected identifier, got %q", p.tok.text)
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return "", err
	}
	for p.tok.kind == tokPunct && p.tok.text == ":" {
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.tok.kind != tokID {
			return "", fmt.Errorf("expected port after %q:, got %q", name, p.tok.text)
		}
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (p *dotParser) optionalAttrList() (map[string]string, error) {
	if p.tok.kind == tokPunct && p.tok.text == "[" {
		return p.attrList()
	}
	return map[string]string{}, nil
}

// attrList reads one or more bracketed attribute groups.
func (p *dotParser) attrList() (map[string]string, error) {
	attrs := map[string]string{}
	for p.tok.kind == tokPunct && p.tok.text == "[" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for !(p.tok.kind == tokPunct && p.tok.text == "]") {
			if p.tok.kind != tokID {
				return nil, fmt.Errorf("expected attribute name, got %q", p.tok.text)
			}
			key := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expectPunct("="); err != nil {
				return nil, err
			}
			if p.tok.kind != tokID {
				return nil, fmt.Errorf("expected value for %q, got %q", key, p.tok.text)
			}
			attrs[key] = p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			for p.tok.kind == tokPunct && (p.tok.text == "," || p.tok.text == ";") {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return attrs, nil
}
