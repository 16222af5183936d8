package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidReference is returned when a reference string's numeric suffix
// cannot be parsed.
var ErrInvalidReference = errors.New("invalid_reference")

const (
	proposalPrefix = "P-"
	invoicePrefix  = "INV-"
)

// ProposalRef formats a proposal reference, e.g. P-0007. The zero padding
// is cosmetic; numbers above 9999 widen naturally.
func ProposalRef(number int64) string {
	return fmt.Sprintf("P-%04d", number)
}

// InvoiceRef formats an invoice reference, e.g. INV-0007.
func InvoiceRef(number int64) string {
	return fmt.Sprintf("INV-%04d", number)
}

// Ref formats a reference for the given kind.
func Ref(k Kind, number int64) string {
	if k == KindProposal {
		return ProposalRef(number)
	}
	return InvoiceRef(number)
}

// ParseRef extracts the shared sequence number from a reference string,
// accepting either prefix. The numeric suffix is the upsert key, so a
// corrected reference string with the same number addresses the same record.
func ParseRef(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	var suffix string
	switch {
	case strings.HasPrefix(ref, invoicePrefix):
		suffix = ref[len(invoicePrefix):]
	case strings.HasPrefix(ref, proposalPrefix):
		suffix = ref[len(proposalPrefix):]
	default:
		return 0, ErrInvalidReference
	}
	number, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || number <= 0 {
		return 0, ErrInvalidReference
	}
	return number, nil
}
