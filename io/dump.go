package io

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a hex and ASCII listing of data, 16 bytes to a line, with
// addresses counted from origin.
func Dump(w io.Writer, data []byte, origin uint32) (err error) {
	for n := 0; n < len(data); n += 16 {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%08X ", origin+uint32(n))

		line := data[n:min(n+16, len(data))]
		for col := range 16 {
			if col < len(line) {
				fmt.Fprintf(&sb, "%02X ", line[col])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" ")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				sb.WriteByte('.')
			}
		}

		sb.WriteString("\n")

		_, err = io.WriteString(w, sb.String())
		if err != nil {
			return
		}
	}

	return
}
