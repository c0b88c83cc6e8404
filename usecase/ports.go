package usecase

// ViewRecorder accepts fire-and-forget view increments. Implementations
// must return quickly and never block on the primary store; the response
// that triggered the view does not wait for the counter write.
type ViewRecorder interface {
	Record(jobID string)
}
