package types

import (
	"iter"
	"slices"
)

// Field is a single name/value pair used to construct records.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from unique field names to values.
//
// Field order is the order in which names were first inserted and is
// significant: it drives column order when a record is displayed.
// The zero Record is empty and ready to use.
type Record struct {
	cols []string
	vals []Value
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.cols)
}

// Columns returns the field names in order.
func (r Record) Columns() []string {
	return slices.Clone(r.cols)
}

// IndexOf returns the position of name, or -1.
func (r Record) IndexOf(name string) int {
	return slices.Index(r.cols, name)
}

// Contains reports whether the record has a field called name.
func (r Record) Contains(name string) bool {
	return r.IndexOf(name) >= 0
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	i := r.IndexOf(name)
	if i < 0 {
		return Value{}, false
	}
	return r.vals[i], true
}

// At returns the name and value of the i-th field. It panics if i is out of range.
func (r Record) At(i int) (string, Value) {
	return r.cols[i], r.vals[i]
}

// All returns an iterator over the fields in order.
//
// Example:
//
//	for name, value := range rec.All() {
//		fmt.Printf("%s = %s\n", name, value)
//	}
func (r Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, name := range r.cols {
			if !yield(name, r.vals[i]) {
				return
			}
		}
	}
}

// Equal reports whether r and other hold the same fields in the same order.
func (r Record) Equal(other Record) bool {
	return slices.Equal(r.cols, other.cols) &&
		slices.EqualFunc(r.vals, other.vals, Value.Equal)
}

// RecordBuilder accumulates fields before a Record is frozen.
//
// A builder is owned by a single parse call. It implements the two duplicate
// key policies used by the parsers: Set (last write wins) and InsertOrPromote
// (repeated names become a list).
type RecordBuilder struct {
	index   map[string]int
	entries []entry
}

type entry struct {
	name string
	val  Value
	many []Value // non-nil once the field has been promoted to a list
}

// NewRecordBuilder returns a builder with room for capacity fields.
func NewRecordBuilder(capacity int) *RecordBuilder {
	return &RecordBuilder{
		index:   make(map[string]int, capacity),
		entries: make([]entry, 0, capacity),
	}
}

// Len returns the number of distinct field names seen so far.
func (b *RecordBuilder) Len() int {
	return len(b.entries)
}

// Has reports whether name has been inserted.
func (b *RecordBuilder) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Set stores v under name, replacing any earlier value.
// A replaced field keeps its original position.
func (b *RecordBuilder) Set(name string, v Value) {
	if i, ok := b.index[name]; ok {
		b.entries[i] = entry{name: name, val: v}
		return
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, entry{name: name, val: v})
}

// InsertOrPromote stores v under name. The first occurrence is stored as is;
// the second converts the field to a list of both values, and every further
// occurrence is appended to that list in source order.
func (b *RecordBuilder) InsertOrPromote(name string, v Value) {
	i, ok := b.index[name]
	if !ok {
		b.index[name] = len(b.entries)
		b.entries = append(b.entries, entry{name: name, val: v})
		return
	}
	e := &b.entries[i]
	if e.many == nil {
		e.many = []Value{e.val}
	}
	e.many = append(e.many, v)
}

// Build freezes the accumulated fields into a Record.
func (b *RecordBuilder) Build() Record {
	rec := Record{
		cols: make([]string, len(b.entries)),
		vals: make([]Value, len(b.entries)),
	}
	for i, e := range b.entries {
		rec.cols[i] = e.name
		if e.many != nil {
			rec.vals[i] = List(e.many...)
		} else {
			rec.vals[i] = e.val
		}
	}
	return rec
}
