package models

type FailureReason string

const (
	ReasonNotFound      FailureReason = "NOT_FOUND"
	ReasonNoCommits     FailureReason = "NO_COMMITS"
	ReasonUpstreamError FailureReason = "UPSTREAM_ERROR"
)

const OutcomeSuccess = "SUCCESS"

var failureMessages = map[FailureReason]string{
	ReasonNotFound:      "User not found",
	ReasonNoCommits:     "no commits to show",
	ReasonUpstreamError: "GitHub is unavailable right now, please try again later",
}

// * Message returns the short diagnostic shown to the user for a failure reason
func (r FailureReason) Message() string {
	if msg, ok := failureMessages[r]; ok {
		return msg
	}
	return failureMessages[ReasonUpstreamError]
}

// * ResolutionResult is either a commit (success) or a reason plus message (failure).
// * It is always served with HTTP 200.
type ResolutionResult struct {
	Commit  *CommitRecord `json:"commit"`
	Reason  FailureReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`
}

func Success(commit *CommitRecord) ResolutionResult {
	return ResolutionResult{Commit: commit}
}

func Failure(reason FailureReason) ResolutionResult {
	return ResolutionResult{Reason: reason, Message: reason.Message()}
}

func (r ResolutionResult) OK() bool {
	return r.Commit != nil
}

// * Outcome is SUCCESS or the failure reason, as recorded in the lookup ledger and metrics
func (r ResolutionResult) Outcome() string {
	if r.OK() {
		return OutcomeSuccess
	}
	return string(r.Reason)
}
