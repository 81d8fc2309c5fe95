package train

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Field identifies one of the three keys of a persisted record.
type Field uint8

const (
	FieldNum Field = 1 << iota
	FieldDestination
	FieldStartTime
)

// Record is a single train departure.
//
// Records decoded from disk may lack some keys. The zero value of the
// missing set means every field is present, so records built in code are
// always complete.
type Record struct {
	Num         int
	Destination string
	StartTime   string

	missing Field
}

// NewRecord returns a complete record.
func NewRecord(num int, destination, startTime string) Record {
	return Record{Num: num, Destination: destination, StartTime: startTime}
}

// Has reports whether the field was present when the record was decoded.
func (r Record) Has(f Field) bool {
	return r.missing&f == 0
}

type wireRecord struct {
	Num         *int    `json:"num,omitempty"`
	Destination *string `json:"destination,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	var w wireRecord
	if r.Has(FieldNum) {
		w.Num = &r.Num
	}
	if r.Has(FieldDestination) {
		w.Destination = &r.Destination
	}
	if r.Has(FieldStartTime) {
		w.StartTime = &r.StartTime
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ErrNullRecord is returned when a record is JSON null instead of an object.
var ErrNullRecord = errors.New("record is null")

func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrNullRecord
	}

	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Record{}
	if w.Num != nil {
		r.Num = *w.Num
	} else {
		r.missing |= FieldNum
	}
	if w.Destination != nil {
		r.Destination = *w.Destination
	} else {
		r.missing |= FieldDestination
	}
	if w.StartTime != nil {
		r.StartTime = *w.StartTime
	} else {
		r.missing |= FieldStartTime
	}
	return nil
}
