package disasm

import (
	"fmt"
	"io"
	"strings"
)

const dataBytesPerLine = 16

// Write writes the disassembly lines as assembly source.
func (dis *Disasm) Write(w io.Writer, lines []Line) error {
	previousLineWasCode := true

	for i, line := range lines {
		// print an empty line in case of data after code and vice versa
		if i > 0 && line.Label == "" && line.IsCode() != previousLineWasCode {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = line.IsCode()

		if line.Label != "" {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing line: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if _, err := fmt.Fprintf(w, "  %s\n", dis.formatLine(line)); err != nil {
			return fmt.Errorf("writing line at 0x%04X: %w", line.Address, err)
		}
	}
	return nil
}

// formatLine returns the line content including the optional comment.
func (dis *Disasm) formatLine(line Line) string {
	content := line.Code
	if !line.IsCode() {
		content = formatData(line.Data)
	}

	var comment []string
	if dis.options.OffsetComments {
		comment = append(comment, fmt.Sprintf("$%04X", line.Address))
	}
	if dis.options.HexComments && line.IsCode() {
		comment = append(comment, hexBytes(line.Data))
	}
	if len(comment) == 0 {
		return content
	}
	return fmt.Sprintf("%-32s ; %s", content, strings.Join(comment, " "))
}

func formatData(data []byte) string {
	buf := &strings.Builder{}
	buf.WriteString("db ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "0x%02X", b)
	}
	return buf.String()
}

func hexBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
