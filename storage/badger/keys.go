package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/ingres/core"
)

// Key prefixes for feedback data
const (
	feedbackPrefix     = "fdbk"
	feedbackDatePrefix = "fdbkd"
	feedbackIDSeq      = "fdbkseq"
)

// makeFeedbackKey generates a key for a feedback entry by ID.
func makeFeedbackKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", feedbackPrefix, id))
}

// makeFeedbackDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeFeedbackDateKey(submitted time.Time, id core.ID) []byte {
	buf := makePartialFeedbackDateKey(submitted)
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makePartialFeedbackDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialFeedbackDateKey(submitted time.Time) []byte {
	prefix := feedbackDatePrefix + ":"
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	// BigEndian so lexicographic order is chronological
	return binary.BigEndian.AppendUint64(buf, uint64(submitted.UnixMicro()))
}
