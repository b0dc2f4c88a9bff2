package annot

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/gogpu/ofpact/ofp"
)

// EnumMarker opens the annotated enumeration.
const EnumMarker = "enum ofp_raw_action_type {"

// AuxTableMarker in the argument segment flags decoders that need the
// vl_mff_map lookup table.
const AuxTableMarker = "VLMFF"

var (
	enumLine   = regexp.MustCompile(`^\s+(([A-Z]+)_RAW([0-9]*)_([A-Z0-9_]+)),?`)
	bracketed  = regexp.MustCompile(`\[[^\]]*\]`)
	destArgSep = regexp.MustCompile(`^([^:]+):\s+(.*)$`)
)

// Parser reads annotated enumerators from a LineSource.
type Parser struct {
	src     *LineSource
	seen    map[string]struct{}
	started bool
	done    bool
}

// NewParser creates a parser over r. The file name is used in diagnostics.
func NewParser(r io.Reader, file string) *Parser {
	return &Parser{
		src:  NewLineSource(r, file),
		seen: make(map[string]struct{}),
	}
}

// Parse returns every enumerator in the block.
func (p *Parser) Parse() ([]*ActionDecl, error) {
	var decls []*ActionDecl
	for {
		decl, err := p.Next()
		if errors.Is(err, io.EOF) {
			return decls, nil
		}
		if err != nil {
			return decls, err
		}
		decls = append(decls, decl)
	}
}

// Next returns the next enumerator, or io.EOF once the enumeration block is
// closed. Every other error is a *SourceError and ends the scan.
func (p *Parser) Next() (*ActionDecl, error) {
	if p.done {
		return nil, io.EOF
	}
	if !p.started {
		if err := p.findEnum(); err != nil {
			return nil, err
		}
		p.started = true
	}

	var line string
	for {
		var err error
		if line, err = p.line(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(line, "/*") || isBlank(line) {
			// Column-0 comments are section headers, not annotations.
			continue
		}
		if strings.HasPrefix(line, "}") {
			p.done = true
			return nil, io.EOF
		}
		break
	}

	comment, err := p.comment(line)
	if err != nil {
		return nil, err
	}
	commentPos := p.pos()

	dests, argText, aux, err := splitComment(comment)
	if err != nil {
		return nil, &SourceError{Message: err.Error(), Pos: commentPos}
	}

	line, err = p.line()
	if err != nil {
		return nil, err
	}
	m := enumLine.FindStringSubmatch(line)
	if m == nil {
		return nil, p.errorf("syntax error expecting enum value")
	}
	enum := m[1]
	if _, dup := p.seen[enum]; dup {
		return nil, p.errorf("%s specified twice", enum)
	}
	p.seen[enum] = struct{}{}

	decl := &ActionDecl{
		Enum:     enum,
		AuxTable: aux,
		Pos:      p.pos(),
	}
	if decl.Dests, err = ParseDests(dests); err != nil {
		return nil, p.errorf("%s", err)
	}
	if decl.Arg, err = ParseArgType(argText); err != nil {
		return nil, p.errorf("%s", err)
	}
	return decl, nil
}

func (p *Parser) findEnum() error {
	for {
		line, err := p.line()
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, EnumMarker) {
			return nil
		}
	}
}

// comment accumulates a block comment that starts on first.
func (p *Parser) comment(first string) (string, error) {
	trimmed := strings.TrimLeft(first, " \t")
	if !strings.HasPrefix(trimmed, "/*") {
		return "", p.errorf("unexpected syntax between actions")
	}

	text := strings.TrimSpace(trimmed[2:])
	for !strings.HasSuffix(text, "*/") {
		line, err := p.line()
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(line, "/*") || isBlank(line) {
			return "", p.errorf("unexpected syntax within action")
		}
		text += " " + strings.TrimRight(strings.TrimLeft(line, "* \t"), " \t\r\n")
	}
	return strings.TrimSpace(strings.TrimSuffix(text, "*/")), nil
}

// splitComment separates the destination list from the argument type and
// strips the bracketed hint, the trailing period and the VLMFF marker.
func splitComment(comment string) (dests, arg string, aux bool, err error) {
	switch n := len(bracketed.FindAllStringIndex(comment, -1)); {
	case n > 1:
		return "", "", false, errors.New("more than one bracketed annotation in action comment")
	case n == 1:
		comment = strings.TrimSpace(bracketed.ReplaceAllString(comment, ""))
	}

	m := destArgSep.FindStringSubmatch(comment)
	if m == nil {
		return "", "", false, errors.New("missing ':' between destinations and argument type")
	}
	dests = strings.TrimSpace(m[1])
	arg = strings.TrimSpace(m[2])

	// The marker may carry the argument's trailing period ("VLMFF.");
	// the period stays with the argument.
	fields := strings.Fields(arg)
	for i, f := range fields {
		marker, period := strings.CutSuffix(f, ".")
		if marker != AuxTableMarker {
			continue
		}
		aux = true
		fields = append(fields[:i], fields[i+1:]...)
		if period {
			if i > 0 {
				fields[i-1] += "."
			} else {
				fields = append([]string{"."}, fields...)
			}
		}
		break
	}
	arg = strings.Join(fields, " ")

	switch {
	case strings.HasSuffix(arg, varLenSuffix+"."):
		arg = strings.TrimSuffix(arg, ".")
	case strings.HasSuffix(arg, varLenSuffix):
	default:
		arg = strings.TrimSuffix(arg, ".")
		if strings.HasSuffix(arg, ".") {
			return "", "", false, errors.New("more than one trailing period after argument type")
		}
	}
	return dests, strings.TrimSpace(arg), aux, nil
}

func (p *Parser) line() (string, error) {
	line, err := p.src.Next()
	if errors.Is(err, io.EOF) {
		return "", p.errorf("unexpected end of input")
	}
	if err != nil {
		return "", p.errorf("read error: %v", err)
	}
	return line, nil
}

func (p *Parser) pos() ofp.Position {
	return ofp.Position{File: p.src.File(), Line: p.src.Line()}
}

func (p *Parser) errorf(format string, args ...interface{}) *SourceError {
	return NewSourceErrorf(p.pos(), format, args...)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
