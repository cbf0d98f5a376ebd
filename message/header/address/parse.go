package address

import (
	"strings"

	"github.com/zostay/go-mailfield/internal/scanner"
	"github.com/zostay/go-mailfield/message/header/field"
)

type parser struct {
	src  string
	toks []scanner.Token
	pos  int
}

// Parse reads an address list. Units are separated by commas outside of
// quotes, comments, angle brackets, and groups; empty units are skipped. A unit
// that does not parse becomes a literal Address holding its trimmed text.
func Parse(s string) List {
	p := &parser{src: s, toks: scanner.Tokenize(s)}

	var l List
	for p.pos < len(p.toks) {
		if p.peek().Is(',') {
			p.pos++
			continue
		}

		start := p.pos
		if e, ok := p.entry(true); ok && p.atEnd(',') {
			l = append(l, e)
			continue
		}

		p.pos = start
		end := p.skipUnit()
		l = append(l, &Address{
			Raw: strings.TrimSpace(p.src[p.toks[start].Start:p.toks[end-1].End]),
		})
	}

	return l
}

func (p *parser) peek() scanner.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return scanner.Token{}
}

// atEnd returns true at the end of input or when the next token is one of the
// given terminators.
func (p *parser) atEnd(terms ...byte) bool {
	if p.pos >= len(p.toks) {
		return true
	}
	for _, c := range terms {
		if p.toks[p.pos].Is(c) {
			return true
		}
	}
	return false
}

// skipUnit moves past the current unit and returns the index of the token
// after it.
func (p *parser) skipUnit() int {
	depth, inGroup := 0, false
	for ; p.pos < len(p.toks); p.pos++ {
		t := p.toks[p.pos]
		switch {
		case t.Is('<'):
			depth++
		case t.Is('>') && depth > 0:
			depth--
		case t.Is(':') && depth == 0:
			inGroup = true
		case t.Is(';') && depth == 0:
			inGroup = false
		case t.Is(',') && depth == 0 && !inGroup:
			return p.pos
		}
	}
	return p.pos
}

// comments consumes any comment tokens and appends their text to c.
func (p *parser) comments(c []string) []string {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == scanner.Comment {
		c = append(c, p.toks[p.pos].Value())
		p.pos++
	}
	return c
}

// entry parses a mailbox or, when allowed, a group.
func (p *parser) entry(allowGroup bool) (Entry, bool) {
	var (
		phrase   []scanner.Token
		comments []string
	)

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.Kind {
		case scanner.Atom, scanner.QuotedString:
			phrase = append(phrase, t)
			p.pos++
			continue
		case scanner.Comment:
			comments = append(comments, t.Value())
			p.pos++
			continue
		}

		switch {
		case t.Is(':') && allowGroup && len(phrase) > 0:
			p.pos++
			return p.group(decodePhrase(phrase))

		case t.Is('<'):
			p.pos++
			a, ok := p.angleAddr()
			if !ok {
				return nil, false
			}
			a.DisplayName = decodePhrase(phrase)
			a.Comment = strings.Join(p.comments(comments), " ")
			return a, true

		case t.Is('@'):
			local, ok := joinAdjacent(phrase)
			if !ok {
				return nil, false
			}
			p.pos++
			domain, ok := p.domain()
			if !ok {
				return nil, false
			}
			return &Address{
				Local:   decodeWord(local),
				Domain:  decodeWord(domain),
				Comment: strings.Join(p.comments(comments), " "),
			}, true
		}

		break
	}

	// a lone word is taken as a local part with no domain
	if len(phrase) == 1 && phrase[0].Kind == scanner.Atom {
		return &Address{
			Local:   phrase[0].Text,
			Comment: strings.Join(comments, " "),
		}, true
	}

	return nil, false
}

// group parses the members of a group after its colon. A missing final
// semicolon is tolerated at the end of input.
func (p *parser) group(name string) (Entry, bool) {
	g := &Group{Name: name}
	for p.pos < len(p.toks) {
		switch {
		case p.peek().Is(','):
			p.pos++
			continue
		case p.peek().Is(';'):
			p.pos++
			p.comments(nil)
			return g, true
		}

		e, ok := p.entry(false)
		if !ok || !p.atEnd(',', ';') {
			return nil, false
		}
		g.Members = append(g.Members, e.(*Address))
	}
	return g, true
}

// angleAddr parses an addr-spec after "<" through the closing ">".
func (p *parser) angleAddr() (*Address, bool) {
	var local []scanner.Token
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if t.Kind != scanner.Atom && t.Kind != scanner.QuotedString {
			break
		}
		local = append(local, t)
		p.pos++
	}

	l, ok := joinAdjacent(local)
	if !ok {
		return nil, false
	}

	a := &Address{Local: decodeWord(l)}
	if p.peek().Is('@') {
		p.pos++
		d, ok := p.domain()
		if !ok {
			return nil, false
		}
		a.Domain = decodeWord(d)
	}

	if !p.peek().Is('>') {
		return nil, false
	}
	p.pos++

	return a, true
}

// domain reads the atoms of a domain, which must not be separated by
// whitespace.
func (p *parser) domain() (string, bool) {
	var ts []scanner.Token
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == scanner.Atom {
		if len(ts) > 0 && p.toks[p.pos].SpaceBefore {
			break
		}
		ts = append(ts, p.toks[p.pos])
		p.pos++
	}
	return joinAdjacent(ts)
}

// joinAdjacent concatenates the raw text of tokens written with no whitespace
// between them. It fails on empty input or on interior whitespace.
func joinAdjacent(ts []scanner.Token) (string, bool) {
	if len(ts) == 0 {
		return "", false
	}

	var b strings.Builder
	for i, t := range ts {
		if i > 0 && t.SpaceBefore {
			return "", false
		}
		b.WriteString(t.Text)
	}
	return b.String(), true
}

// decodeWord decodes s if the whole of it is an encoded-word, which is how a
// non-ASCII local part or domain is written on the wire.
func decodeWord(s string) string {
	if !field.IsEncodedWord(s) {
		return s
	}
	if dec, err := field.DecodeWord(s); err == nil {
		return dec
	}
	return s
}

// decodePhrase turns display-name tokens into text. Quotes are removed and
// encoded-words are decoded. Whitespace between two encoded-words is dropped.
func decodePhrase(ts []scanner.Token) string {
	var (
		b       strings.Builder
		prevEnc bool
	)

	for i, t := range ts {
		s := t.Value()
		enc := field.IsEncodedWord(s)
		if enc {
			if dec, err := field.DecodeWord(s); err == nil {
				s = dec
			} else {
				enc = false
			}
		}

		if i > 0 && t.SpaceBefore && !(enc && prevEnc) {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		prevEnc = enc
	}

	return b.String()
}
