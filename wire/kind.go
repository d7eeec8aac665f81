// Package wire defines the closed set of J value kinds and their numeric
// wire codes, the single source of truth that both the codec package's
// encoder and decoder dispatch against.
package wire

import (
	"fmt"

	"github.com/arloliu/jwire/jerrs"
)

// Kind is the wire discriminator for a J value. It is written as a
// little-endian type code at the start of every encoded value: 8 bytes for
// INT, TIME, DURATION and FLOAT, 4 bytes for every other kind.
type Kind uint8

const (
	Null      Kind = 0
	Boolean   Kind = 1
	Int       Kind = 2
	Date      Kind = 3
	Time      Kind = 4
	Datetime  Kind = 5
	Timestamp Kind = 6
	Duration  Kind = 7
	Float     Kind = 8
	String    Kind = 9
	Cat       Kind = 10
	Series    Kind = 11
	// 12 is unused: no kind maps to this wire code; decoders reject it.
	List      Kind = 13
	Dict      Kind = 14
	Dataframe Kind = 15
	Err       Kind = 16
	Fn        Kind = 17
)

// String returns the kind's canonical name, as used in error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var kindNames = map[Kind]string{
	Null:      "NULL",
	Boolean:   "BOOLEAN",
	Int:       "INT",
	Date:      "DATE",
	Time:      "TIME",
	Datetime:  "DATETIME",
	Timestamp: "TIMESTAMP",
	Duration:  "DURATION",
	Float:     "FLOAT",
	String:    "STRING",
	Cat:       "CAT",
	Series:    "SERIES",
	List:      "LIST",
	Dict:      "DICT",
	Dataframe: "DATAFRAME",
	Err:       "ERR",
	Fn:        "FN",
}

// ParseKind resolves a raw wire code to a Kind, rejecting the unused code 12
// and anything outside the closed enumeration.
func ParseKind(code uint8) (Kind, error) {
	k := Kind(code)
	if _, ok := kindNames[k]; !ok {
		return 0, fmt.Errorf("%w: code %d", jerrs.ErrUnknownKind, code)
	}

	return k, nil
}

// fixedTrailer holds, for fixed-layout kinds, the number of payload bytes
// that follow the 4-byte type code, minus 1. A kind absent from this map has
// a variable-length payload.
var fixedTrailer = map[Kind]int{
	Null:     7,
	Boolean:  7,
	Int:      15,
	Time:     15,
	Duration: 15,
	Float:    15,
	Date:     7,
}

// FixedTrailer reports the fixed trailer size for kind and whether kind has
// a fixed-layout payload at all. The codec package does not call it:
// container decoders advance by the byte count each nested decode returns.
func FixedTrailer(k Kind) (int, bool) {
	n, ok := fixedTrailer[k]
	return n, ok
}
