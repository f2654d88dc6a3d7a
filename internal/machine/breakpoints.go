package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// ParseBreakpoints parses a comma separated list of hex addresses with an
// optional 0x or $ prefix.
func ParseBreakpoints(s string) (set.Set[uint16], error) {
	breakpoints := set.New[uint16]()
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		value := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(field), "0x"), "$")
		address, err := strconv.ParseUint(value, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		breakpoints.Add(uint16(address))
	}
	return breakpoints, nil
}
