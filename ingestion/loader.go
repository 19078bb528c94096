package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/tutorkit/core"
)

// LoadDocument reads a course document from disk, dispatching on the
// file extension. Supported extensions are .txt, .md, and .pdf; anything
// else fails with an UnsupportedFileTypeError.
func LoadDocument(path string) (*core.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt":
		return loadText(path, "text/plain")
	case ".md":
		return loadText(path, "text/markdown")
	case ".pdf":
		return loadPDF(path)
	default:
		return nil, &UnsupportedFileTypeError{Path: path, Ext: ext}
	}
}

func loadText(path, contentType string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.Document{
		Source:      filepath.Base(path),
		ContentType: contentType,
		Text:        string(data),
	}, nil
}

func loadPDF(path string) (*core.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	body, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extracting pdf text from %s: %w", path, err)
	}
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("reading pdf text from %s: %w", path, err)
	}

	return &core.Document{
		Source:      filepath.Base(path),
		ContentType: "application/pdf",
		Text:        buf.String(),
	}, nil
}
