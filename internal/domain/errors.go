package domain

import "errors"

// Failure taxonomy for the pipeline. Every error except ErrStoreUnavailable is
// caught at its originating stage and recorded as an outcome; store failures
// abort the cycle because the idempotence guarantee depends on the store.
var (
	ErrSourceUnreachable   = errors.New("feed source unreachable")
	ErrSummarizationFailed = errors.New("summarization failed")
	ErrRenderingFailed     = errors.New("rendering failed")
	ErrPublishFailed       = errors.New("publish failed")
	ErrStoreUnavailable    = errors.New("article store unavailable")
)
