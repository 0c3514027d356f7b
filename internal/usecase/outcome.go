package usecase

// SyncStatus classifies the result of the mailing-list workflow.
type SyncStatus string

const (
	// SyncOK means the subscriber was patched or created and the campaign
	// tag is present.
	SyncOK SyncStatus = "OK"

	// SyncRecovered means a provider call failed but the workflow swallowed
	// it: the mailing list is a secondary system and must never fail the
	// request once the sheet row is written.
	SyncRecovered SyncStatus = "RECOVERED"

	// SyncFatal means the workflow could not even authenticate and was
	// abandoned. Still contained: the request succeeds regardless.
	SyncFatal SyncStatus = "FATAL"
)

// SyncOutcome makes the swallowed-error policy assertable in tests instead
// of only visible in logs.
type SyncOutcome struct {
	Status SyncStatus
	Reason string
}

func (o SyncOutcome) OK() bool {
	return o.Status == SyncOK
}
