// Package console provides the terminal implementation of interfaces.Console.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"packagexpress/internal/interfaces"
)

// Console reads lines from r and writes lines to w
type Console struct {
	reader *bufio.Reader
	writer io.Writer
}

var _ interfaces.Console = (*Console)(nil)

// New creates a console over the given reader and writer
func New(r io.Reader, w io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ReadLine returns the next line without its terminator.
// A final line with no trailing newline is still returned; io.EOF follows on the next call.
func (c *Console) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return trimLineEnding(line), nil
		}
		return "", err
	}
	return trimLineEnding(line), nil
}

// WriteLine writes text followed by a newline
func (c *Console) WriteLine(text string) error {
	if _, err := fmt.Fprintln(c.writer, text); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
