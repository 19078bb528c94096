package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Source:      "lecture1.txt",
				ContentType: "text/plain",
				Text:        "Photosynthesis converts light energy into chemical energy.",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "empty source",
			doc:     &Document{Text: "some text"},
			wantErr: ErrEmptySource,
		},
		{
			name:    "empty text",
			doc:     &Document{Source: "lecture1.txt"},
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Source:  "lecture1.txt",
				Ordinal: 0,
				Start:   0,
				End:     5,
				Text:    "hello",
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "empty source",
			chunk:   &Chunk{Text: "hello", End: 5},
			wantErr: ErrEmptySource,
		},
		{
			name:    "empty text",
			chunk:   &Chunk{Source: "lecture1.txt"},
			wantErr: ErrEmptyText,
		},
		{
			name: "negative ordinal",
			chunk: &Chunk{
				Source:  "lecture1.txt",
				Ordinal: -1,
				Start:   0,
				End:     5,
				Text:    "hello",
			},
			wantErr: ErrNegativeOrdinal,
		},
		{
			name: "span does not match text length",
			chunk: &Chunk{
				Source:  "lecture1.txt",
				Ordinal: 0,
				Start:   0,
				End:     3,
				Text:    "hello",
			},
			wantErr: ErrInvalidSpan,
		},
		{
			name: "end before start",
			chunk: &Chunk{
				Source:  "lecture1.txt",
				Ordinal: 0,
				Start:   10,
				End:     5,
				Text:    "hello",
			},
			wantErr: ErrInvalidSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
