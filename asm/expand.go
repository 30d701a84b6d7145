package asm

import (
	"bufio"
	"errors"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/csm-lang/csm/arch"
	"github.com/csm-lang/csm/token"
)

// Config holds the tunable machine parameters taken from '!' directives.
type Config struct {
	Registers int // Number of general purpose registers.
	Memory    int // Total memory words, image included.
	Limit     int // Instruction ceiling; 0 means unbounded.
	Clock     int // Delay between instructions, in milliseconds.
}

// DefaultConfig returns the configuration used when no directive overrides it.
func DefaultConfig() Config {
	return Config{
		Registers: 8,
		Memory:    256,
	}
}

// option bounds; register indices and addresses must fit the codec value field.
type option struct {
	min, max int
	set      func(*Config, int)
}

var options = map[string]option{
	"REGISTERS": {3, arch.ValueMax + 1, func(cfg *Config, v int) { cfg.Registers = v }},
	"MEMORY":    {16, arch.ValueMax + 1, func(cfg *Config, v int) { cfg.Memory = v }},
	"LIMIT":     {0, 1 << 30, func(cfg *Config, v int) { cfg.Limit = v }},
	"CLOCK":     {0, 60000, func(cfg *Config, v int) { cfg.Clock = v }},
}

// Expander is the precompilation stage: it consumes raw source lines and
// produces normalized lines for the lexer, collecting '!' configuration
// directives and substituting compile-time $() expressions.
type Expander struct {
	Verbose bool
	Config  Config
}

// NewExpander creates an expander with the default configuration.
func NewExpander() *Expander {
	return &Expander{Config: DefaultConfig()}
}

// Directive applies a single !OPTION=VALUE directive, as found either on a
// source line or among the command line arguments.
func (ex *Expander) Directive(directive string) (err error) {
	text := strings.TrimPrefix(strings.TrimSpace(directive), "!")

	name, value, found := strings.Cut(text, "=")
	if !found {
		return ErrOptionSyntax
	}

	name = strings.ToUpper(strings.TrimSpace(name))
	value = strings.TrimSpace(value)

	opt, ok := options[name]
	if !ok {
		return ErrOptionUnknown
	}

	for _, c := range value {
		if c < '0' || c > '9' {
			return ErrOptionValue
		}
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return ErrOptionValue
	}

	if v < opt.min || v > opt.max {
		return ErrOptionBounds
	}

	opt.set(&ex.Config, v)

	if ex.Verbose {
		log.Printf("expand: %v = %v", name, v)
	}

	return
}

var exprPattern = regexp.MustCompile(`\$\((.*?)\)`)

// exprEval does a compile-time $(...) evaluation with the current
// configuration values predeclared.
func (ex *Expander) exprEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"REGISTERS": starlark.MakeInt(ex.Config.Registers),
		"MEMORY":    starlark.MakeInt(ex.Config.Memory),
		"LIMIT":     starlark.MakeInt(ex.Config.Limit),
		"CLOCK":     starlark.MakeInt(ex.Config.Clock),
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = errors.New(f("no result"))
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = errors.New(f("result is not an integer"))
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = errors.New(f("result out of range"))
		return
	}

	return
}

// expandLine substitutes every $() expression on one line and strips
// directive lines, keeping the output line count identical to the input.
func (ex *Expander) expandLine(line string, lineno int) (out string, err error) {
	if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "!") {
		err = ex.Directive(trimmed)
		if err != nil {
			col := strings.IndexRune(line, '!') + 1
			err = &ErrDirective{
				Pos:       token.Pos{Line: lineno, Column: col},
				Directive: trimmed,
				Err:       err,
			}
			return
		}
		return "", nil
	}

	// Leave comment text untouched.
	code := line
	comment := ""
	if n := strings.IndexRune(line, ';'); n >= 0 {
		code, comment = line[:n], line[n:]
	}

	var sb strings.Builder
	last := 0
	for _, loc := range exprPattern.FindAllStringIndex(code, -1) {
		expr := code[loc[0]+2 : loc[1]-1]
		value, _err := ex.exprEval(expr)
		if _err != nil {
			err = &ErrExpression{
				Pos:  token.Pos{Line: lineno, Column: loc[0] + 1},
				Expr: expr,
				Err:  _err,
			}
			return
		}
		sb.WriteString(code[last:loc[0]])
		sb.WriteString(strconv.FormatInt(value, 10))
		last = loc[1]
	}
	sb.WriteString(code[last:])

	out = sb.String() + comment

	return
}

// Expand runs the precompilation stage over the whole source, returning the
// normalized text handed to the lexer. Line numbering is preserved.
func (ex *Expander) Expand(input io.Reader) (source string, err error) {
	scanner := bufio.NewScanner(input)

	var lines []string
	var lineno int

	for scanner.Scan() {
		lineno += 1

		line, err := ex.expandLine(scanner.Text(), lineno)
		if err != nil {
			return "", err
		}

		lines = append(lines, line)
	}
	if err = scanner.Err(); err != nil {
		return
	}

	source = strings.Join(lines, "\n")
	if len(lines) > 0 {
		source += "\n"
	}

	return
}
