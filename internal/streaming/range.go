package streaming

import (
	"errors"
	"strconv"
	"strings"
)

// ErrRangeNotSatisfiable is returned for ranges outside the resource or with invalid syntax.
var ErrRangeNotSatisfiable = errors.New("range not satisfiable")

// ByteRange is an inclusive byte interval.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange resolves a Range header against a resource of the given size.
// Only the first range of a multi-range request is honoured.
func ParseRange(header string, size int64) (ByteRange, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return ByteRange{}, ErrRangeNotSatisfiable
	}
	rng := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if i := strings.IndexByte(rng, ','); i >= 0 {
		rng = strings.TrimSpace(rng[:i])
	}

	dash := strings.IndexByte(rng, '-')
	if dash < 0 {
		return ByteRange{}, ErrRangeNotSatisfiable
	}
	startStr := strings.TrimSpace(rng[:dash])
	endStr := strings.TrimSpace(rng[dash+1:])

	// suffix form: bytes=-N
	if startStr == "" {
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 || size == 0 {
			return ByteRange{}, ErrRangeNotSatisfiable
		}
		if n > size {
			n = size
		}
		return ByteRange{Start: size - n, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 || start >= size {
		return ByteRange{}, ErrRangeNotSatisfiable
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return ByteRange{}, ErrRangeNotSatisfiable
		}
		if end >= size {
			end = size - 1
		}
	}

	return ByteRange{Start: start, End: end}, nil
}
