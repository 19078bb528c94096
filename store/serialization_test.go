package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSerialization_RoundTrip(t *testing.T) {
	record := &Record{
		ID:     "lecture1.txt#0",
		Text:   "Photosynthesis converts light energy into chemical energy.",
		Vector: []float32{0.1, -0.5, 0.25, 1.0},
		Metadata: map[string]string{
			"source": "lecture1.txt",
		},
	}

	data := MarshalRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestRecordSerialization_NilMetadata(t *testing.T) {
	record := &Record{
		ID:     "notes.pdf#3",
		Text:   "chunk text",
		Vector: []float32{1, 2, 3},
	}

	decoded, err := UnmarshalRecord(MarshalRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.ID, decoded.ID)
	assert.Equal(t, record.Text, decoded.Text)
	assert.Equal(t, record.Vector, decoded.Vector)
	assert.Empty(t, decoded.Metadata)
}

func TestUnmarshalRecord_Truncated(t *testing.T) {
	record := &Record{ID: "a#0", Text: "text", Vector: []float32{1}}
	data := MarshalRecord(record)

	_, err := UnmarshalRecord(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestNewRecords(t *testing.T) {
	t.Run("parallel sequences", func(t *testing.T) {
		records, err := NewRecords(
			[]string{"a#0", "a#1"},
			[]string{"first", "second"},
			[][]float32{{1, 0}, {0, 1}},
			[]map[string]string{{"source": "a"}, {"source": "a"}},
		)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a#0", records[0].ID)
		assert.Equal(t, "second", records[1].Text)
		assert.Equal(t, map[string]string{"source": "a"}, records[1].Metadata)
	})

	t.Run("nil metadata allowed", func(t *testing.T) {
		records, err := NewRecords([]string{"a#0"}, []string{"x"}, [][]float32{{1}}, nil)
		require.NoError(t, err)
		assert.Nil(t, records[0].Metadata)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewRecords([]string{"a#0", "a#1"}, []string{"x"}, [][]float32{{1}}, nil)
		assert.ErrorIs(t, err, ErrLengthMismatch)

		_, err = NewRecords([]string{"a#0"}, []string{"x"}, [][]float32{{1}}, []map[string]string{{}, {}})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})
}
