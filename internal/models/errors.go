package models

import "errors"

// Domain errors shared by the repository and service layers. Handlers
// translate them into the API error taxonomy.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrProfileNotFound = errors.New("profile not found")

	// Workflow precondition violations.
	ErrSelfApply      = errors.New("cannot apply to your own post")
	ErrAlreadyApplied = errors.New("already applied to this post")
	ErrNotPostAuthor  = errors.New("only the post author may do this")
	ErrPostNotOpen    = errors.New("post is no longer open")
	ErrPostNotMatched = errors.New("post has no accepted match yet")
	ErrMatchNotMember = errors.New("not a participant of this post")

	// Review rules.
	ErrAlreadyReviewed = errors.New("reviewee already reviewed for this post")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	// Chat rules.
	ErrEmptyMessage = errors.New("message content is empty")
)

// IsWorkflowError reports whether err is a workflow precondition
// failure rather than a store failure. Workflow errors are terminal:
// retrying them cannot succeed.
func IsWorkflowError(err error) bool {
	for _, e := range []error{
		ErrPostNotFound, ErrMatchNotFound, ErrProfileNotFound,
		ErrSelfApply, ErrAlreadyApplied, ErrNotPostAuthor,
		ErrPostNotOpen, ErrPostNotMatched, ErrMatchNotMember,
		ErrAlreadyReviewed, ErrInvalidRating, ErrEmptyMessage,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
