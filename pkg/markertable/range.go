package markertable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/markeridx/pkg/markerindex"
)

// ParseRange parses a range in the form "start-end"; a single number is
// parsed as an empty range at that position.
func ParseRange(s string) (markerindex.Range, error) {
	var r markerindex.Range
	from, to := s, s
	if h := strings.IndexByte(s, '-'); h != -1 {
		from, to = s[:h], s[h+1:]
	}
	start, err := strconv.Atoi(from)
	if err != nil {
		return r, fmt.Errorf("invalid start %q in range %q", from, s)
	}
	end, err := strconv.Atoi(to)
	if err != nil {
		return r, fmt.Errorf("invalid end %q in range %q", to, s)
	}
	if end < start {
		return r, fmt.Errorf("end before start in range %q", s)
	}
	return markerindex.Range{Start: start, End: end}, nil
}

func FormatRange(r markerindex.Range) string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
