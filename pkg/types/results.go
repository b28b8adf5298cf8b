package types

import "time"

// EntryOutcome records the result of transferring a single entry
type EntryOutcome struct {
	EntryID     EntryID `json:"entryId"`
	FileName    string  `json:"fileName"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Action      Action  `json:"action"`
	// Replaced is set when an existing destination was deleted under PolicyOverwrite
	Replaced bool  `json:"replaced,omitempty"`
	DryRun   bool  `json:"dryRun,omitempty"`
	Error    error `json:"-"`
}

// Failed reports whether the entry's operation failed
func (o EntryOutcome) Failed() bool {
	return o.Action == ActionFailed
}

// ErrorMessage returns the error text, or "" when the entry did not fail
func (o EntryOutcome) ErrorMessage() string {
	if o.Error == nil {
		return ""
	}
	return o.Error.Error()
}

// TransferCounts summarises outcomes by action
type TransferCounts struct {
	Transferred int `json:"transferred"`
	CopiedAside int `json:"copiedAside"`
	Skipped     int `json:"skipped"`
	Unchanged   int `json:"unchanged"`
	Failed      int `json:"failed"`
}

// Total returns the number of entries accounted for
func (c TransferCounts) Total() int {
	return c.Transferred + c.CopiedAside + c.Skipped + c.Unchanged + c.Failed
}

// TransferResult is returned by a transfer run
type TransferResult struct {
	Operation   Operation      `json:"operation"`
	Policy      Policy         `json:"policy,omitempty"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Status      Status         `json:"status"`
	DryRun      bool           `json:"dryRun"`
	Conflicts   []FileConflict `json:"conflicts,omitempty"`
	Outcomes    []EntryOutcome `json:"outcomes"`
	Counts      TransferCounts `json:"counts"`
	StartedAt   time.Time      `json:"startedAt"`
	Duration    time.Duration  `json:"duration"`
}

// Add appends an outcome and updates the counters
func (r *TransferResult) Add(o EntryOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Action {
	case ActionTransferred:
		r.Counts.Transferred++
	case ActionCopiedAside:
		r.Counts.CopiedAside++
	case ActionSkipped:
		r.Counts.Skipped++
	case ActionUnchanged:
		r.Counts.Unchanged++
	case ActionFailed:
		r.Counts.Failed++
	}
}

// Finalize derives the terminal status from the recorded outcomes
func (r *TransferResult) Finalize() {
	if r.Status == StatusAborted {
		return
	}
	if r.Counts.Failed > 0 {
		r.Status = StatusPartialFailure
		return
	}
	r.Status = StatusSuccess
}

// Failures returns the outcomes that failed
func (r *TransferResult) Failures() []EntryOutcome {
	var failed []EntryOutcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Succeeded returns the outcomes whose file now carries its intended name
func (r *TransferResult) Succeeded() []EntryOutcome {
	var ok []EntryOutcome
	for _, o := range r.Outcomes {
		if o.Action == ActionTransferred || o.Action == ActionCopiedAside || o.Action == ActionUnchanged {
			ok = append(ok, o)
		}
	}
	return ok
}
