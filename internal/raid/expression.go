package raid

import (
	"fmt"
	"strconv"
	"strings"
)

// DrivesFromExpression expands a storcli drive list such as
// "252:0-2,5,253:1" into "enclosure:slot" pairs. An element with a colon
// switches the enclosure for the elements that follow it.
func DrivesFromExpression(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty drive expression")
	}

	var (
		drives []string
		encl   string
		seen   bool
	)
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if e, slots, found := strings.Cut(part, ":"); found {
			encl, part, seen = e, slots, true
		}
		if !seen {
			return nil, fmt.Errorf("drive expression %q: missing enclosure", expr)
		}
		if part == "" {
			return nil, fmt.Errorf("drive expression %q: empty slot", expr)
		}

		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			drives = append(drives, encl+":"+part)
			continue
		}

		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("drive expression %q: %w", expr, err)
		}
		stop, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("drive expression %q: %w", expr, err)
		}
		if stop < start {
			return nil, fmt.Errorf("drive expression %q: range %s is reversed", expr, part)
		}
		for slot := start; slot <= stop; slot++ {
			drives = append(drives, encl+":"+strconv.Itoa(slot))
		}
	}
	return drives, nil
}
