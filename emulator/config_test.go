package emulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, dir string, text string) (filename string) {
	filename = filepath.Join(dir, "machine.star")
	err := os.WriteFile(filename, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	filename := writeConfig(t, dir, `
image = "bios.bin"
memory_size = 512 * KB
load_address = RESET_SEGMENT << 4
stack_pointer = 0x7000
console_port = DEBUG_PORT + 1
`)

	config := DefaultConfig
	assert.NoError(LoadConfig(filename, &config))
	assert.Equal(Config{
		Image:        filepath.Join(dir, "bios.bin"),
		MemorySize:   0x80000,
		LoadAddress:  0xf0000,
		StackPointer: 0x7000,
		ConsolePort:  0xea,
	}, config)
}

func TestLoadConfig_Partial(t *testing.T) {
	assert := assert.New(t)

	filename := writeConfig(t, t.TempDir(), `
image = "/opt/roms/test.bin"
print("megabyte", MB)
`)

	config := DefaultConfig
	assert.NoError(LoadConfig(filename, &config))
	assert.Equal("/opt/roms/test.bin", config.Image)
	assert.Equal(DefaultConfig.MemorySize, config.MemorySize)
	assert.Equal(DefaultConfig.LoadAddress, config.LoadAddress)
	assert.Equal(DefaultConfig.StackPointer, config.StackPointer)
}

func TestLoadConfig_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
	}){
		{"syntax", "image = "},
		{"image_type", "image = 42"},
		{"sp_range", "stack_pointer = 0x10000"},
		{"negative", "load_address = -1"},
		{"port_type", "console_port = 'e9'"},
	}

	for _, entry := range table {
		filename := writeConfig(t, t.TempDir(), entry.text)
		config := DefaultConfig
		err := LoadConfig(filename, &config)
		var cerr *ErrConfig
		if assert.ErrorAs(err, &cerr, entry.name) {
			assert.Equal(filename, cerr.Filename, entry.name)
		}
	}

	err := LoadConfig(filepath.Join(t.TempDir(), "missing.star"), &Config{})
	assert.ErrorIs(err, os.ErrNotExist)

	filename := writeConfig(t, t.TempDir(), "memory_size = 'lots'")
	assert.ErrorIs(LoadConfig(filename, &Config{}), ErrConfigValue("memory_size"))
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("0xF000", defines["RESET_SEGMENT"])
	assert.Equal("0xE9", defines["CONSOLE_PORT"])
	assert.Equal("0x0040", defines["FLAG_ZF"])
	assert.Contains(defines, "ROM_WINDOW")
}
