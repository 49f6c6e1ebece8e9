// Package pagination normalizes caller-supplied paging parameters so list
// queries can never run with a non-positive page size or a negative offset.
package pagination

// Default paging values applied when the caller supplies nothing usable.
const (
	DefaultSkip = 0
	DefaultTake = 10
)

// Normalize produces a safe (skip, take) pair from untrusted input. A nil
// pointer means the parameter was absent. take is honored only when
// positive; skip only when non-negative, and an explicit zero is kept
// rather than replaced with the default.
func Normalize(skip, take *int) (int, int) {
	s, t := DefaultSkip, DefaultTake
	if take != nil && *take > 0 {
		t = *take
	}
	if skip != nil && *skip >= 0 {
		s = *skip
	}
	return s, t
}

// Result describes one page of a list response.
type Result struct {
	Skip       int
	Take       int
	Total      int
	Page       int
	TotalPages int
}

// NewResult derives page numbers from an already-normalized (skip, take)
// pair and the total row count. take must be positive, which Normalize
// guarantees.
func NewResult(skip, take, total int) Result {
	return Result{
		Skip:       skip,
		Take:       take,
		Total:      total,
		Page:       skip/take + 1,
		TotalPages: (total + take - 1) / take,
	}
}
