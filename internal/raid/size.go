package raid

import (
	"strconv"
	"strings"
)

var sizeUnits = map[string]float64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"K":  1 << 10,
	"MB": 1 << 20,
	"M":  1 << 20,
	"GB": 1 << 30,
	"G":  1 << 30,
	"TB": 1 << 40,
	"T":  1 << 40,
	"PB": 1 << 50,
	"P":  1 << 50,
}

// ParseSizeToBytes converts storcli sizes such as "278.875 GB" to bytes.
// storcli prints binary units with decimal names. Unparseable input
// yields 0.
func ParseSizeToBytes(sizeStr string) int64 {
	sizeStr = strings.ToUpper(strings.ReplaceAll(sizeStr, " ", ""))
	if sizeStr == "" {
		return 0
	}

	end := strings.IndexFunc(sizeStr, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	numStr, unit := sizeStr, ""
	if end >= 0 {
		numStr, unit = sizeStr[:end], sizeStr[end:]
	}

	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return int64(value)
	}
	return int64(value * multiplier)
}
