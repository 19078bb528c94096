// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package store

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// recordSer serializes Record values in MUS format.
// Field order: ID, Text, Vector, Metadata.
type recordSer struct{}

// RecordMUS is the MUS serializer for Record.
var RecordMUS = recordSer{}

var _ mus.Serializer[Record] = recordSer{}

func (recordSer) Marshal(r Record, bs []byte) (n int) {
	n = ord.String.Marshal(r.ID, bs)
	n += ord.String.Marshal(r.Text, bs[n:])
	n += vectorMUS.Marshal(r.Vector, bs[n:])
	n += metadataMUS.Marshal(r.Metadata, bs[n:])
	return n
}

func (recordSer) Unmarshal(bs []byte) (r Record, n int, err error) {
	var n1 int
	r.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (recordSer) Size(r Record) (size int) {
	size = ord.String.Size(r.ID)
	size += ord.String.Size(r.Text)
	size += vectorMUS.Size(r.Vector)
	size += metadataMUS.Size(r.Metadata)
	return size
}

func (recordSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = metadataMUS.Skip(bs[n:])
	n += n1
	return
}

// MarshalRecord serializes a Record to bytes.
func MarshalRecord(record *Record) []byte {
	buf := make([]byte, RecordMUS.Size(*record))
	RecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRecord deserializes a Record from bytes.
func UnmarshalRecord(data []byte) (*Record, error) {
	record, _, err := RecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
