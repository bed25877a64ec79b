package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// textSource resolves the text a command works on: the -text flag when
// given, stdin otherwise.
type textSource struct {
	Text  string
	In    io.Reader
	Out   io.Writer
	isSet bool
}

func newTextSource() textSource {
	return textSource{In: os.Stdin, Out: os.Stdout}
}

func (s *textSource) read() (string, error) {
	if s.isSet {
		return s.Text, nil
	}
	data, err := io.ReadAll(s.In)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
