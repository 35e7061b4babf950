package cmd

import (
	"io"
	"os"
)

// readAllStdin drains stdin for the no-file-argument form of run/lex/parse.
func readAllStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
