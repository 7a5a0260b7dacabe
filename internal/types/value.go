// Package types provides the core data structures shared by every format parser.
//
// This package defines the Value tree that all parsers emit into, the Format
// enum, the Document returned by a parse call, parser options, and the error
// and warning types used to report structural problems.
package types

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNothing represents an absent value.
	KindNothing Kind = iota
	// KindString represents UTF-8 text.
	KindString
	// KindBinary represents raw bytes.
	KindBinary
	// KindRecord represents an ordered name/value mapping.
	KindRecord
	// KindList represents an ordered sequence of values.
	KindList
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable, recursive tagged union representing any decoded datum.
//
// The zero Value is Nothing. Values are built bottom-up by the parsers and
// never reference each other through a mutable graph, so a Value tree can
// be shared freely between goroutines once returned.
type Value struct {
	str  string
	bin  []byte
	rec  Record
	list []Value
	kind Kind
}

// Nothing returns the absent value.
func Nothing() Value {
	return Value{}
}

// String returns a Value holding text.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Binary returns a Value holding a copy of b.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(b)}
}

// NewRecord returns a Value holding rec.
func NewRecord(rec Record) Value {
	return Value{kind: KindRecord, rec: rec}
}

// RecordOf builds a record Value from an ordered sequence of fields.
//
// A later field with the same name overwrites the earlier one in place.
func RecordOf(fields ...Field) Value {
	b := NewRecordBuilder(len(fields))
	for _, f := range fields {
		b.Set(f.Name, f.Value)
	}
	return NewRecord(b.Build())
}

// List returns a Value holding a copy of vs.
func List(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindList, list: slices.Clone(vs)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNothing reports whether v is the absent value.
func (v Value) IsNothing() bool {
	return v.kind == KindNothing
}

// Str returns the text held by v and whether v is a String.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Bytes returns a copy of the bytes held by v and whether v is Binary.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return bytes.Clone(v.bin), true
}

// Record returns the record held by v and whether v is a Record.
func (v Value) Record() (Record, bool) {
	if v.kind != KindRecord {
		return Record{}, false
	}
	return v.rec, true
}

// Items returns a copy of the list held by v and whether v is a List.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Len returns the number of bytes, fields or items held by v.
// Nothing has length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.str)
	case KindBinary:
		return len(v.bin)
	case KindRecord:
		return v.rec.Len()
	case KindList:
		return len(v.list)
	default:
		return 0
	}
}

// Equal reports whether v and other are structurally equal.
//
// Record field order is significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNothing:
		return true
	case KindString:
		return v.str == other.str
	case KindBinary:
		return bytes.Equal(v.bin, other.bin)
	case KindRecord:
		return v.rec.Equal(other.rec)
	case KindList:
		return slices.EqualFunc(v.list, other.list, Value.Equal)
	default:
		return false
	}
}

// TypeName describes the shape of v, e.g. "record<name: string>" or "list<string>".
func (v Value) TypeName() string {
	switch v.kind {
	case KindRecord:
		var sb strings.Builder
		sb.WriteString("record<")
		for i := 0; i < v.rec.Len(); i++ {
			name, val := v.rec.At(i)
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(val.TypeName())
		}
		sb.WriteString(">")
		return sb.String()
	case KindList:
		if len(v.list) == 0 {
			return "list<any>"
		}
		elem := v.list[0].TypeName()
		for _, item := range v.list[1:] {
			if item.TypeName() != elem {
				return "list<any>"
			}
		}
		return "list<" + elem + ">"
	default:
		return v.kind.String()
	}
}

// String renders v for diagnostics.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDebug(&sb)
	return sb.String()
}

// GoString implements fmt.GoStringer so %#v prints the same debug rendering.
func (v Value) GoString() string {
	return v.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case KindNothing:
		sb.WriteString("nothing")
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindBinary:
		fmt.Fprintf(sb, "binary(%d bytes)", len(v.bin))
	case KindRecord:
		sb.WriteString("{")
		for i := 0; i < v.rec.Len(); i++ {
			name, val := v.rec.At(i)
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(name)
			sb.WriteString(": ")
			val.writeDebug(sb)
		}
		sb.WriteString("}")
	case KindList:
		sb.WriteString("[")
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeDebug(sb)
		}
		sb.WriteString("]")
	}
}
