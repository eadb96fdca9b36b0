package document

// Record is the source content a document is rendered from.
// It is owned by the record store and never mutated during a render.
type Record struct {
	ID      int64
	Title   string
	Body    string
	Deleted bool
}

// IsAvailable returns true if the record exists and is not logically deleted
func (r *Record) IsAvailable() bool {
	return r != nil && !r.Deleted
}
