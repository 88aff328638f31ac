package main

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readSource loads an .edu file. The text is NFC-normalized so identifiers
// typed with combining accents match their precomposed spelling.
func readSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("missing source file: pass the path of an .edu program")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return norm.NFC.String(string(data)), nil
}
