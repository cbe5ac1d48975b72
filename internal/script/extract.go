// Package script reads a script file's full text locally so empty content
// can be rejected before anything reaches the backend.
package script

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// ExtractText returns the text of a script file. PDF content is extracted
// page by page and whitespace-normalized; anything else is submitted
// verbatim as UTF-8 text so line and scene structure survives.
func ExtractText(name string, data []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return extractPDFText(data)
	}
	return string(data), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return normalize(builder.String()), nil
}

func normalize(text string) string {
	return strings.TrimSpace(extraneousWhitespace.ReplaceAllString(text, " "))
}
