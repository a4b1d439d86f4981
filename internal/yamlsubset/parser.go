package yamlsubset

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	entryPattern  = regexp.MustCompile(`^(\w+):\s*(.*)$`)
	bulletPattern = regexp.MustCompile(`^  - `)
	nestedPattern = regexp.MustCompile(`^  (\w+):\s*(.*)$`)
)

const (
	blockIndent     = "  "
	blockScalarMark = "|"
)

// lineKind classifies a raw line before parsing.
type lineKind int

const (
	lineOther lineKind = iota
	lineBlankOrComment
	lineEntry
	lineBullet
	lineNested
)

type line struct {
	raw   string
	kind  lineKind
	key   string // lineEntry, lineNested
	value string // trimmed remainder after the colon, or bullet text
}

func classify(raw string) line {
	l := line{raw: raw}
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		l.kind = lineBlankOrComment
	case bulletPattern.MatchString(raw):
		l.kind = lineBullet
		l.value = strings.TrimSpace(strings.TrimPrefix(raw, "  - "))
	default:
		if m := entryPattern.FindStringSubmatch(raw); m != nil {
			l.kind = lineEntry
			l.key, l.value = m[1], strings.TrimSpace(m[2])
		} else if m := nestedPattern.FindStringSubmatch(raw); m != nil {
			l.kind = lineNested
			l.key, l.value = m[1], strings.TrimSpace(m[2])
		}
	}
	return l
}

// blank reports whether a line has no content. Comment lines are not blank:
// inside a block scalar an indented "# ..." is text.
func (l line) blank() bool {
	return strings.TrimSpace(l.raw) == ""
}

// Parse reads a metadata document written in the supported YAML subset:
//
//	key: scalar          # number, null/~, "quoted", 'quoted', bare text
//	key: []              # empty list
//	key: |               # block scalar, two-space indented lines
//	  first line
//	  second line
//	key:                 # list of strings
//	  - item
//	  - "quoted item"
//	key:                 # single-level mapping, numbers coerced
//	  child: 12
//
// Anything else is skipped. Parse never fails; malformed input yields a
// partial or empty Document. A repeated key overwrites the earlier value.
func Parse(content string) Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	raw := strings.Split(content, "\n")
	p := &parser{lines: make([]line, len(raw)), doc: Document{}}
	for i, r := range raw {
		p.lines[i] = classify(r)
	}
	p.parseDocument()
	return p.doc
}

type parser struct {
	lines []line
	pos   int
	doc   Document
}

func (p *parser) done() bool { return p.pos >= len(p.lines) }

func (p *parser) peek() line { return p.lines[p.pos] }

func (p *parser) parseDocument() {
	for !p.done() {
		l := p.peek()
		if l.kind != lineEntry {
			p.pos++
			continue
		}
		p.pos++
		p.doc[l.key] = p.parseEntryValue(l.value)
	}
}

// parseEntryValue decides the value of a top-level entry from the remainder
// after its colon, consuming continuation lines where needed.
func (p *parser) parseEntryValue(rest string) Value {
	switch rest {
	case "":
		return p.parseNested()
	case blockScalarMark:
		return p.parseBlockScalar()
	default:
		return Coerce(rest)
	}
}

// parseBlockScalar consumes blank and two-space indented lines. Blank lines
// are dropped, one indent level is stripped, and trailing whitespace trimmed.
func (p *parser) parseBlockScalar() Value {
	var parts []string
	for !p.done() {
		l := p.peek()
		if l.blank() {
			p.pos++
			continue
		}
		if !strings.HasPrefix(l.raw, blockIndent) {
			break
		}
		parts = append(parts, strings.TrimPrefix(l.raw, blockIndent))
		p.pos++
	}
	return String(strings.TrimRightFunc(strings.Join(parts, "\n"), unicode.IsSpace))
}

// parseNested resolves a bare "key:" by looking at the following line.
func (p *parser) parseNested() Value {
	if p.done() {
		return String("")
	}
	switch p.peek().kind {
	case lineBullet:
		return p.parseList()
	case lineNested:
		return p.parseMapping()
	default:
		return String("")
	}
}

func (p *parser) parseList() Value {
	var items []string
	for !p.done() && p.peek().kind == lineBullet {
		items = append(items, Dequote(p.peek().value))
		p.pos++
	}
	return List(items...)
}

// parseMapping reads a run of indented "child: value" lines. Values are
// coerced to numbers when numeric and otherwise kept verbatim, quotes included.
func (p *parser) parseMapping() Value {
	fields := map[string]Value{}
	for !p.done() && p.peek().kind == lineNested {
		l := p.peek()
		if f, ok := ParseNumber(l.value); ok {
			fields[l.key] = Number(f)
		} else {
			fields[l.key] = String(l.value)
		}
		p.pos++
	}
	return Map(fields)
}
