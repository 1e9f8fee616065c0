// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/emu86/emulator"
	"github.com/ezrec/emu86/internal"
)

// MAX_INCLUDE_DEPTH bounds the nesting of .include directives.
const MAX_INCLUDE_DEPTH = 16

// Predefined system equates
var sysEquate = maps.Collect(internal.IterSeq2Concat(
	maps.All(map[string]string{"LINENO": "0"}),
	emulator.Defines(),
))

var (
	reChar  = regexp.MustCompile(`'\\?[^']'`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Line is a preprocessed line of source.
type Line struct {
	Filename string   // File the line was read from.
	LineNo   int      // Line number within Filename.
	Words    []string // Mnemonic, then operands.
}

// String formats the line as 'mnemonic op, op'.
func (line Line) String() string {
	if len(line.Words) == 0 {
		return ""
	}

	return strings.TrimSpace(line.Words[0] + " " + strings.Join(line.Words[1:], ", "))
}

// Assembler is the front end of an 8086 assembler.
type Assembler struct {
	IncludePath []string          // Directories searched by .include.
	Equate      map[string]string // Map of equates.
	Lines       []Line            // Preprocessed lines.

	predefine map[string]string // Predefines
	depth     int               // Current .include depth.
}

// Predefine defines an equate before any source is read. The value may
// contain $(...) expressions.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations. Integer equates are
// visible to the expression.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Registers and other non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// expand replaces character constants and $(...) expressions with their
// numeric values.
func (asm *Assembler) expand(line string) (expanded string, err error) {
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return strconv.Itoa(int(str[0]))
	})

	expanded = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// isSeparator splits words on white space and operand commas.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// parseLine expands a single line, and handles .equ directives.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, isSeparator)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// search returns the candidate paths of an included file: the directory
// of the including file first, then the include path.
func (asm *Assembler) search(dir string, name string) iter.Seq[string] {
	if filepath.IsAbs(name) {
		return slices.Values([]string{name})
	}

	dirs := internal.IterSeqConcat(slices.Values([]string{dir}), slices.Values(asm.IncludePath))

	return func(yield func(string) bool) {
		for d := range dirs {
			if !yield(filepath.Join(d, name)) {
				return
			}
		}
	}
}

// include parses the first file called name along the search path.
func (asm *Assembler) include(dir string, name string) (err error) {
	if asm.depth >= MAX_INCLUDE_DEPTH {
		err = ErrIncludeDepth
		return
	}

	for path := range asm.search(dir, name) {
		inf, oerr := os.Open(path)
		if oerr != nil {
			continue
		}
		defer inf.Close()

		err = asm.parse(path, inf)
		return
	}

	err = ErrIncludeMissing(name)
	return
}

// parse preprocesses all lines of input, appending to asm.Lines.
func (asm *Assembler) parse(filename string, input io.Reader) (err error) {
	var text string
	var lineno int

	defer func() {
		var serr ErrSyntax
		if err != nil && !errors.As(err, &serr) {
			err = ErrSyntax{Filename: filename, LineNo: lineno, Line: text, Err: err}
		}
	}()

	asm.depth++
	defer func() { asm.depth-- }()

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		logrus.WithFields(logrus.Fields{
			"file": filename,
			"line": lineno,
		}).Trace(text)

		line, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		// .include "FILE"
		if words[0] == ".include" {
			if len(words) != 2 {
				err = ErrIncludeSyntax
				return
			}
			err = asm.include(filepath.Dir(filename), strings.Trim(words[1], `"`))
			if err != nil {
				return
			}
			continue
		}

		asm.Lines = append(asm.Lines, Line{Filename: filename, LineNo: lineno, Words: words})
	}

	err = scanner.Err()

	return
}

// Preprocess reads the source text of filename from input, and returns
// the preprocessed lines.
func (asm *Assembler) Preprocess(filename string, input io.Reader) (lines []Line, err error) {
	asm.Lines = nil
	asm.depth = 0
	asm.Equate = maps.Clone(sysEquate)
	for equ, value := range asm.predefine {
		value, err = asm.expand(value)
		if err != nil {
			err = fmt.Errorf("-D %v: %w", equ, err)
			return
		}
		asm.Equate[equ] = value
	}

	err = asm.parse(filename, input)
	if err != nil {
		return
	}

	lines = slices.Clone(asm.Lines)

	return
}

// Assemble preprocesses the source text, then encodes it. Encoding is not
// yet implemented, so the first instruction found is reported as
// ErrNotImplemented.
func (asm *Assembler) Assemble(filename string, input io.Reader) (code []byte, err error) {
	lines, err := asm.Preprocess(filename, input)
	if err != nil {
		return
	}

	if len(lines) > 0 {
		line := lines[0]
		err = ErrSyntax{Filename: line.Filename, LineNo: line.LineNo, Line: line.String(), Err: ErrNotImplemented}
		return
	}

	code = []byte{}

	return
}
