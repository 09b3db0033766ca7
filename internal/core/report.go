package core

// FileReport is the outcome of aligning one batch input file. Error is set
// when the file could not be processed; the other result fields are then
// empty.
type FileReport struct {
	Name          string `json:"name"`
	AlignedName   string `json:"alignedName,omitempty"`
	OriginalLines int    `json:"originalLines"`
	Checksum      string `json:"checksum,omitempty"`
	Error         string `json:"error,omitempty"`
}

// OK reports whether the file was aligned and archived.
func (r FileReport) OK() bool {
	return r.Error == ""
}

// BatchReport describes one batch run. Files keep the input order.
type BatchReport struct {
	RunID   string       `json:"runId"`
	Archive string       `json:"archive"`
	Files   []FileReport `json:"files"`
}

// Succeeded returns the number of files that were processed.
func (r *BatchReport) Succeeded() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Files {
		if f.OK() {
			n++
		}
	}
	return n
}
