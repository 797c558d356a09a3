package importer

// Failure reasons recorded in a Summary.
const (
	ReasonInvalid             = "invalid"
	ReasonRequestFailed       = "request_failed"
	ReasonNotFound            = "not_found"
	ReasonMissingMetadata     = "missing_metadata"
	ReasonPersistenceConflict = "persistence_conflict"
	ReasonStoreError          = "store_error"
)

// Failure is one ISBN that could not be imported.
type Failure struct {
	ISBN   string `json:"isbn" yaml:"isbn"`
	Reason string `json:"reason" yaml:"reason"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary counts the outcome of an import run.
type Summary struct {
	Total    int       `json:"total" yaml:"total"`
	Success  int       `json:"success" yaml:"success"`
	Failed   int       `json:"failed" yaml:"failed"`
	Skipped  int       `json:"skipped" yaml:"skipped"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// AddFailure counts isbn as failed.
func (s *Summary) AddFailure(isbn, reason string, err error) {
	f := Failure{ISBN: isbn, Reason: reason}
	if err != nil {
		f.Detail = err.Error()
	}
	s.Failed++
	s.Failures = append(s.Failures, f)
}

// Merge adds the counts of other to s.
func (s *Summary) Merge(other Summary) {
	s.Total += other.Total
	s.Success += other.Success
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Failures = append(s.Failures, other.Failures...)
}
