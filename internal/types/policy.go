package types

// DuplicateKeys selects how a parser treats a repeated key within one record.
type DuplicateKeys int

const (
	// LastWriteWins overwrites the earlier value, keeping its position.
	LastWriteWins DuplicateKeys = iota
	// PromoteToList collects every value, in source order, into a list.
	PromoteToList
)

// String returns a short description of the policy.
func (d DuplicateKeys) String() string {
	if d == PromoteToList {
		return "promote to list"
	}
	return "last write wins"
}

// Policy describes how strictly a format is parsed.
//
// Each parser publishes its own Policy; there is no global strictness mode.
type Policy struct {
	// What a malformed line does
	MalformedLine string

	// How far a fatal error reaches
	ErrorScope string

	Duplicates DuplicateKeys

	// Lenient parsers report problems as warnings and never fail on a bad line.
	Lenient bool
}
