package record

import "time"

// Timestamp is the document store's wrapped date representation. Documents
// written by older clients carry dates as {"seconds":..,"nanos":..} objects
// instead of RFC 3339 strings.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// Time converts the wrapper to its native representation.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

// NormalizeDate maps either date representation coming back from the store to
// a native time.Time. A time.Time passes through unchanged, a Timestamp is
// unwrapped, and nil (an absent optional date) reports ok=false. The function
// is idempotent: normalizing an already-normalized date returns the same date.
func NormalizeDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case Timestamp:
		return d.Time(), true
	case *Timestamp:
		if d == nil {
			return time.Time{}, false
		}

		return d.Time(), true
	case nil:
		return time.Time{}, false
	}

	return time.Time{}, false
}
