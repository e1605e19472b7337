package domain

// UploadState is the lifecycle state of the upload orchestrator.
type UploadState string

const (
	UploadIdle       UploadState = "idle"
	UploadValidating UploadState = "validating"
	UploadSelected   UploadState = "selected"
	UploadUploading  UploadState = "uploading"
	UploadSucceeded  UploadState = "succeeded"
	UploadFailed     UploadState = "failed"
)

// validUploadTransitions defines the allowed state machine transitions.
// Selecting a new file is allowed from any settled state; only an in-flight
// upload blocks re-selection.
var validUploadTransitions = map[UploadState][]UploadState{
	UploadIdle:       {UploadValidating},
	UploadValidating: {UploadSelected, UploadIdle},
	UploadSelected:   {UploadUploading, UploadValidating},
	UploadUploading:  {UploadSucceeded, UploadFailed},
	UploadSucceeded:  {UploadIdle, UploadValidating},
	UploadFailed:     {UploadIdle, UploadValidating},
}

// CanTransitionTo reports whether a transition from the current state to
// next is valid.
func (s UploadState) CanTransitionTo(next UploadState) bool {
	for _, allowed := range validUploadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
