package assembler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func source(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n"))
}

func words(lines []Line) (out []string) {
	for _, line := range lines {
		out = append(out, line.String())
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	lines, err := asm.Preprocess("empty.asm", source(""))
	assert.NoError(err)
	assert.Equal(0, len(lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0xF000", asm.Equate["RESET_SEGMENT"])
	assert.Equal("0xE9", asm.Equate["CONSOLE_PORT"])
	assert.Equal("0x0040", asm.Equate["FLAG_ZF"])
}

func TestPreprocess(t *testing.T) {
	table := [](struct {
		name     string
		program  []string
		expected []string
	}){
		{"comments", []string{"; nothing", "  nop ; trailing", ""}, []string{"nop"}},
		{"operands", []string{"mov ax,bx", "add  al , 5"}, []string{"mov ax, bx", "add al, 5"}},
		{"equate", []string{".equ COUNT 3", "mov cx, COUNT"}, []string{"mov cx, 3"}},
		{"equate register", []string{".equ ACC ax", "inc ACC"}, []string{"inc ax"}},
		{"expression", []string{".equ COUNT 3", "mov cx, $(COUNT * 4 + 1)"}, []string{"mov cx, 13"}},
		{"system", []string{"out $(CONSOLE_PORT), al"}, []string{"out 233, al"}},
		{"char", []string{"mov al, 'A'", "mov al, '\\n'"}, []string{"mov al, 65", "mov al, 10"}},
		{"char expression", []string{"mov al, $('a' - 32)"}, []string{"mov al, 65"}},
		{"lineno", []string{"", "mov ax, $(LINENO)"}, []string{"mov ax, 2"}},
		{"negative", []string{"add ax, $(-2)"}, []string{"add ax, -2"}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			asm := &Assembler{}
			lines, err := asm.Preprocess("test.asm", source(entry.program...))
			assert.NoError(err)
			assert.Equal(entry.expected, words(lines))
		})
	}
}

func TestPreprocess_Lines(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	lines, err := asm.Preprocess("test.asm", source("; header", ".equ X 1", "", "push ax", "pop bx"))
	assert.NoError(err)
	assert.Equal([]Line{
		{Filename: "test.asm", LineNo: 4, Words: []string{"push", "ax"}},
		{Filename: "test.asm", LineNo: 5, Words: []string{"pop", "bx"}},
	}, lines)
}

func TestPreprocess_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")
	asm.Predefine("TOP", "$(RESET_SEGMENT + 1)")

	lines, err := asm.Preprocess("test.asm", source("mov ax, BASE", "mov bx, TOP", "mov cx, $(BASE + 1)"))
	assert.NoError(err)
	assert.Equal([]string{"mov ax, 0x100", "mov bx, 61441", "mov cx, 257"}, words(lines))

	// Predefines persist between runs.
	lines, err = asm.Preprocess("again.asm", source("mov ax, BASE"))
	assert.NoError(err)
	assert.Equal([]string{"mov ax, 0x100"}, words(lines))

	asm.Predefine("BAD", "$(1 +)")
	_, err = asm.Preprocess("test.asm", source(""))
	var expr ErrParseExpression
	assert.ErrorAs(err, &expr)
}

func TestPreprocess_Include(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	assert.NoError(os.Mkdir(lib, 0o755))

	assert.NoError(os.WriteFile(filepath.Join(dir, "local.inc"), []byte(".equ LOCAL 1\nnop\n"), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(lib, "sys.inc"), []byte(".equ SYS 2\n.include \"nested.inc\"\n"), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(lib, "nested.inc"), []byte("hlt\n"), 0o644))

	asm := &Assembler{IncludePath: []string{lib}}
	lines, err := asm.Preprocess(filepath.Join(dir, "main.asm"), source(
		".include \"local.inc\"",
		".include sys.inc",
		"mov ax, $(LOCAL + SYS)",
	))
	assert.NoError(err)
	assert.Equal([]string{"nop", "hlt", "mov ax, 3"}, words(lines))
	assert.Equal(filepath.Join(dir, "local.inc"), lines[0].Filename)
	assert.Equal(filepath.Join(lib, "nested.inc"), lines[1].Filename)
	assert.Equal(3, lines[2].LineNo)
}

func TestPreprocess_IncludeDepth(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	self := filepath.Join(dir, "self.inc")
	assert.NoError(os.WriteFile(self, []byte(".include self.inc\n"), 0o644))

	asm := &Assembler{}
	_, err := asm.Preprocess(filepath.Join(dir, "main.asm"), source(".include self.inc"))
	assert.ErrorIs(err, ErrIncludeDepth)

	var serr ErrSyntax
	assert.ErrorAs(err, &serr)
	assert.Equal(self, serr.Filename)
	assert.Equal(1, serr.LineNo)
	assert.Equal(0, asm.depth)
}

func TestPreprocess_Errors(t *testing.T) {
	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"equ syntax", []string{"nop", ".equ X"}, 2, ErrEquateSyntax},
		{"equ duplicate", []string{".equ X 1", ".equ X 2"}, 2, ErrEquateDuplicate},
		{"equ system", []string{".equ KB 1"}, 1, ErrEquateDuplicate},
		{"include syntax", []string{".include"}, 1, ErrIncludeSyntax},
		{"include missing", []string{"", "", ".include none.inc"}, 3, ErrIncludeMissing("none.inc")},
		{"expression", []string{"mov ax, $(UNKNOWN)"}, 1, ErrParseExpression("UNKNOWN")},
		{"not integer", []string{"mov ax, $('x' * 1 == 1)"}, 1, ErrParseExpression("120 * 1 == 1")},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			asm := &Assembler{}
			_, err := asm.Preprocess("test.asm", source(entry.program...))
			assert.ErrorIs(err, entry.err)

			var serr ErrSyntax
			if assert.True(errors.As(err, &serr)) {
				assert.Equal("test.asm", serr.Filename)
				assert.Equal(entry.lineno, serr.LineNo)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	code, err := asm.Assemble("empty.asm", source("; nothing to do", ".equ X 1"))
	assert.NoError(err)
	assert.Equal([]byte{}, code)

	code, err = asm.Assemble("test.asm", source(".equ X 1", "mov ax,X"))
	assert.ErrorIs(err, ErrNotImplemented)
	assert.Nil(code)

	var serr ErrSyntax
	if assert.ErrorAs(err, &serr) {
		assert.Equal(2, serr.LineNo)
		assert.Equal("mov ax, 1", serr.Line)
	}
}
