package nuformats

import (
	"github.com/gaetschwartz/nuformats/internal/types"
)

// Value is an alias to types.Value, the tree every parser produces.
type Value = types.Value

// Record is an alias to types.Record, an ordered name/value mapping.
type Record = types.Record

// Field is an alias to types.Field.
type Field = types.Field

// RecordBuilder is an alias to types.RecordBuilder.
type RecordBuilder = types.RecordBuilder

// Kind is an alias to types.Kind.
type Kind = types.Kind

// Document is an alias to types.Document.
type Document = types.Document

// Re-export value kinds.
const (
	KindNothing = types.KindNothing
	KindString  = types.KindString
	KindBinary  = types.KindBinary
	KindRecord  = types.KindRecord
	KindList    = types.KindList
)

// Nothing returns the absent value.
func Nothing() Value { return types.Nothing() }

// String returns a Value holding text.
func String(s string) Value { return types.String(s) }

// Binary returns a Value holding a copy of b.
func Binary(b []byte) Value { return types.Binary(b) }

// RecordOf builds a record Value from fields in order.
func RecordOf(fields ...Field) Value { return types.RecordOf(fields...) }

// List returns a Value holding vs.
func List(vs ...Value) Value { return types.List(vs...) }

// NewRecordBuilder returns an empty RecordBuilder.
func NewRecordBuilder(capacity int) *RecordBuilder { return types.NewRecordBuilder(capacity) }
