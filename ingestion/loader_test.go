package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocument_Text(t *testing.T) {
	path := writeTempFile(t, "lecture.txt", "hello course")

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "lecture.txt", doc.Source)
	assert.Equal(t, "text/plain", doc.ContentType)
	assert.Equal(t, "hello course", doc.Text)
}

func TestLoadDocument_Markdown(t *testing.T) {
	path := writeTempFile(t, "syllabus.md", "# Week 1\n\nIntro.")

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "syllabus.md", doc.Source)
	assert.Equal(t, "text/markdown", doc.ContentType)
	assert.Equal(t, "# Week 1\n\nIntro.", doc.Text)
}

func TestLoadDocument_ExtensionCase(t *testing.T) {
	path := writeTempFile(t, "NOTES.TXT", "shouting")

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", doc.ContentType)
}

func TestLoadDocument_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"docx", ".docx"},
		{"image", ".png"},
		{"no extension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocument("somewhere/file" + tt.ext)
			var unsupported *UnsupportedFileTypeError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.ext, unsupported.Ext)
		})
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
