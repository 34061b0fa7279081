package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Serial numbers look like DC-20250101-0007: fixed prefix, build date, then a
// zero-padded per-day sequence.
const serialPrefix = "DC"

// serialDatePrefix the shared prefix of every serial issued on a given day,
// e.g. "DC-20250101-"
func serialDatePrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", serialPrefix, t.Format("20060102"))
}

// formatSerial renders a sequence number under a date prefix
func formatSerial(datePrefix string, seq int64) string {
	return fmt.Sprintf("%s%04d", datePrefix, seq)
}

// parseSerialSeq extracts the numeric suffix of a serial sharing the given
// date prefix. Returns 0 when the serial is empty, foreign, or its suffix
// does not parse; the sequence restarts at 1 in all those cases.
func parseSerialSeq(serial, datePrefix string) int64 {
	if serial == "" || !strings.HasPrefix(serial, datePrefix) {
		return 0
	}
	seq, err := strconv.ParseInt(serial[len(datePrefix):], 10, 64)
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

// nextSerial derives the successor of the highest existing serial for the day
func nextSerial(datePrefix, maxExisting string) string {
	return formatSerial(datePrefix, parseSerialSeq(maxExisting, datePrefix)+1)
}
