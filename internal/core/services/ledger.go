package services

// Ledger tracks which opinion ids have already been written to the dataset.
// It is derived from the dataset itself at run start rather than kept as a
// separate index, so the dataset file stays the single source of truth.
//
// A Ledger is owned by a single run and is not safe for concurrent use.
type Ledger struct {
	seen map[int64]struct{}
}

// NewLedger builds a ledger over the ids already present in the dataset.
func NewLedger(known map[int64]struct{}) *Ledger {
	seen := make(map[int64]struct{}, len(known))
	for id := range known {
		seen[id] = struct{}{}
	}
	return &Ledger{seen: seen}
}

// Contains reports whether id has already been processed.
func (l *Ledger) Contains(id int64) bool {
	_, ok := l.seen[id]
	return ok
}

// Mark records id as processed for the remainder of the run, so a listing
// that carries the same id twice still produces a single row.
func (l *Ledger) Mark(id int64) {
	l.seen[id] = struct{}{}
}

// Size returns the number of ids the ledger knows about.
func (l *Ledger) Size() int {
	return len(l.seen)
}
