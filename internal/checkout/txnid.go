package checkout

import (
	"fmt"
	"strconv"
	"strings"
)

const txnIDPrefix = "TXN-"

// NextTransactionID derives the next human-readable sale code from the most
// recently created one: the trailing number is incremented and zero-padded
// to at least four digits, growing unbounded past 9999. An empty lastID
// starts the sequence at TXN-0001.
//
// Note the read-then-increment shape: the sale repositories call this
// inside the same unit of work as the sale insert (an advisory lock in
// Postgres, the store mutex in memory), so two concurrent checkouts can
// never allocate the same code.
func NextTransactionID(lastID string) string {
	if lastID == "" {
		return txnIDPrefix + "0001"
	}
	parts := strings.Split(lastID, "-")
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		// Malformed prior id; restart the visible sequence rather than fail
		// the sale.
		return txnIDPrefix + "0001"
	}
	return fmt.Sprintf("%s%04d", txnIDPrefix, n+1)
}
