package types

import (
	"encoding/base64"

	jsoniter "github.com/json-iterator/go"
)

var (
	jsonAPI    = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonPretty = jsoniter.Config{
		EscapeHTML:    true,
		SortMapKeys:   true,
		IndentionStep: 2,
	}.Froze()
)

// MarshalJSON encodes v as JSON, keeping record fields in order.
// Binary values are base64 encoded and Nothing becomes null.
func (v Value) MarshalJSON() ([]byte, error) {
	return encodeJSON(jsonAPI, v)
}

// MarshalIndentJSON is like MarshalJSON with two space indentation.
func (v Value) MarshalIndentJSON() ([]byte, error) {
	return encodeJSON(jsonPretty, v)
}

func encodeJSON(api jsoniter.API, v Value) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	writeJSON(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// MarshalJSON encodes r as a JSON object with fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	return NewRecord(r).MarshalJSON()
}

func writeJSON(s *jsoniter.Stream, v Value) {
	switch v.kind {
	case KindNothing:
		s.WriteNil()
	case KindString:
		s.WriteString(v.str)
	case KindBinary:
		s.WriteString(base64.StdEncoding.EncodeToString(v.bin))
	case KindRecord:
		if v.rec.Len() == 0 {
			s.WriteEmptyObject()
			return
		}
		s.WriteObjectStart()
		for i := 0; i < v.rec.Len(); i++ {
			if i > 0 {
				s.WriteMore()
			}
			name, val := v.rec.At(i)
			s.WriteObjectField(name)
			writeJSON(s, val)
		}
		s.WriteObjectEnd()
	case KindList:
		if len(v.list) == 0 {
			s.WriteEmptyArray()
			return
		}
		s.WriteArrayStart()
		for i, item := range v.list {
			if i > 0 {
				s.WriteMore()
			}
			writeJSON(s, item)
		}
		s.WriteArrayEnd()
	}
}
