package document

import "errors"

// ErrEntryNotFound is returned when an update or removal names an unknown id.
var ErrEntryNotFound = errors.New("entry not found")

// Entry is an item of one of the document's ordered sequences.
type Entry interface {
	EntryID() string
}

// appendEntry returns a new sequence with e at the end.
func appendEntry[T any](seq []T, e T) []T {
	out := make([]T, len(seq), len(seq)+1)
	copy(out, seq)
	return append(out, e)
}

// replaceEntry returns a new sequence in which the entry with the given id is
// replaced by fn's result. Other entries keep their positions.
func replaceEntry[T Entry](seq []T, id string, fn func(T) T) ([]T, error) {
	for i, e := range seq {
		if e.EntryID() != id {
			continue
		}
		out := make([]T, len(seq))
		copy(out, seq)
		out[i] = fn(e)
		return out, nil
	}
	return seq, ErrEntryNotFound
}

// removeEntry returns a new sequence without the entry carrying id.
func removeEntry[T Entry](seq []T, id string) ([]T, error) {
	for i, e := range seq {
		if e.EntryID() != id {
			continue
		}
		out := make([]T, 0, len(seq)-1)
		out = append(out, seq[:i]...)
		return append(out, seq[i+1:]...), nil
	}
	return seq, ErrEntryNotFound
}

func findEntry[T Entry](seq []T, id string) (T, bool) {
	for _, e := range seq {
		if e.EntryID() == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}
