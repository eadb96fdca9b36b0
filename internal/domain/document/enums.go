package document

// JobStatus represents the status of a render job
type JobStatus string

const (
	JobStatusPending  JobStatus = "PENDING"
	JobStatusComposed JobStatus = "COMPOSED"
	JobStatusStored   JobStatus = "STORED"
	JobStatusDone     JobStatus = "DONE"
	JobStatusFailed   JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusComposed, JobStatusStored, JobStatusDone, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a final state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	if target == JobStatusFailed {
		return !s.IsTerminal()
	}
	switch s {
	case JobStatusPending:
		return target == JobStatusComposed
	case JobStatusComposed:
		return target == JobStatusStored
	case JobStatusStored:
		return target == JobStatusDone
	}
	return false
}
