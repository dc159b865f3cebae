package at

import "slices"

// Table is a lexicographically sorted list of constant strings searched by
// binary search. The ordering is byte-wise; a table that is not sorted
// silently misclassifies lines.
type Table []string

// Contains reports whether s is an exact, case-sensitive member of t.
func (t Table) Contains(s string) bool {
	_, found := slices.BinarySearch(t, s)
	return found
}

// Sorted reports whether t is in byte-wise order.
func (t Table) Sorted() bool {
	return slices.IsSorted(t)
}

// URCs (Unsolicited Result Codes) emitted by the MC20 without a prefix.
var NotificationKeywords = Table{
	"Call Ready",
	"NORMAL POWER DOWN",
	"OVER_VOLTAGE POWER DOWN",
	"OVER_VOLTAGE WARNING",
	"RDY",
	"RING",
	"SMS Ready",
	"UNDER_VOLTAGE POWER DOWN",
	"UNDER_VOLTAGE WARNING",
}

// URCs of the form "+TAG: payload", keyed by TAG.
var NotificationTags = Table{
	"CBM",
	"CDS",
	"CFUN",
	"CGREG",
	"CLIP",
	"CMT",
	"CMTI",
	"CREG",
	"CRING",
	"CTZV",
	"CUSD",
	"QGURC",
	"QIURC",
	"QNITZ",
}

// Final result codes without a prefix.
var FinalKeywords = Table{
	"BUSY",
	"CONNECT",
	ERROR,
	"NO ANSWER",
	"NO CARRIER",
	"NO DIALTONE",
	OK,
}

// Final result codes of the form "+TAG: payload".
var FinalTags = Table{
	"CME ERROR",
	"CMS ERROR",
}
