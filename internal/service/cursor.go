package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
)

// * HistoryCursor is GitHub's history pagination cursor, "<base> <offset>".
// * The offset is the zero-based position of the last node returned, counted from the branch head.
type HistoryCursor struct {
	Base   string
	Offset int
}

// * ParseHistoryCursor accepts exactly two space-separated fields with a non-negative decimal offset.
// * Anything else means GitHub changed its encoding and the offset trick must not be attempted.
func ParseHistoryCursor(raw string) (HistoryCursor, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] == "" || !isDigits(parts[1]) {
		return HistoryCursor{}, malformedCursor(raw, "expected \"<base> <offset>\"")
	}

	offset, err := strconv.Atoi(parts[1])
	if err != nil {
		return HistoryCursor{}, malformedCursor(raw, err.Error())
	}

	return HistoryCursor{Base: parts[0], Offset: offset}, nil
}

func (c HistoryCursor) WithOffset(offset int) HistoryCursor {
	return HistoryCursor{Base: c.Base, Offset: offset}
}

func (c HistoryCursor) String() string {
	return c.Base + " " + strconv.Itoa(c.Offset)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func malformedCursor(raw, reason string) error {
	return errors.New(
		errors.RefMalformedCursor,
		"Unexpected history cursor from GitHub",
		fmt.Sprintf("Cursor %q: %s", raw, reason),
		nil,
		errors.LevelError,
	)
}
