// Package roster turns the raw table feed of the Order Service into the
// ordered list of tables shown to staff.
//
// The feed may repeat tables. Tables are deduplicated by their trimmed number
// (falling back to the id), then listed in two tiers: numbered interior tables
// first, overflow tables (numbers ending in an overflow suffix such as "U")
// after them. Each tier is ordered by the first run of digits in the number.
package roster

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
)

// overflowSuffixes are matched case-insensitively against the end of a table
// number.
var overflowSuffixes = []string{"U"}

// Normalize deduplicates and orders tables. It does not modify its input.
func Normalize(tables []entity.Table) []entity.Table {
	seen := make(map[string]struct{}, len(tables))
	var primary, overflow []entity.Table

	for _, t := range tables {
		k := Key(t)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if IsOverflowTable(t.Number) {
			overflow = append(overflow, t)
		} else {
			primary = append(primary, t)
		}
	}

	byOrdinal := func(a, b entity.Table) int {
		return cmp.Compare(ExtractOrdinal(a.Number), ExtractOrdinal(b.Number))
	}
	slices.SortStableFunc(primary, byOrdinal)
	slices.SortStableFunc(overflow, byOrdinal)

	out := make([]entity.Table, 0, len(primary)+len(overflow))
	out = append(out, primary...)
	return append(out, overflow...)
}

// Key is the deduplication key of a table: the trimmed number, else the id.
func Key(t entity.Table) string {
	if n := strings.TrimSpace(t.Number); n != "" {
		return n
	}
	return t.ID
}

// IsOverflowTable reports whether number carries an overflow suffix.
func IsOverflowTable(number string) bool {
	for _, suffix := range overflowSuffixes {
		if len(number) >= len(suffix) && strings.EqualFold(number[len(number)-len(suffix):], suffix) {
			return true
		}
	}
	return false
}

// ExtractOrdinal parses the first run of ASCII digits in number. Numbers
// without digits, or whose digit run does not fit an int, sort last.
func ExtractOrdinal(number string) int {
	start := strings.IndexFunc(number, isDigit)
	if start < 0 {
		return math.MaxInt
	}
	end := start
	for end < len(number) && isDigit(rune(number[end])) {
		end++
	}
	n, err := strconv.Atoi(number[start:end])
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Validate rejects feed entries that can be neither displayed nor opened.
func Validate(tables []entity.Table) error {
	for i, t := range tables {
		if strings.TrimSpace(t.Number) == "" && t.ID == "" {
			return fmt.Errorf("%w: table at position %d has neither number nor id", entity.ErrProtocolViolation, i)
		}
	}
	return nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
