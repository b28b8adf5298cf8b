package types

// Operation defines what a transfer does with each selected file
type Operation string

const (
	// OperationCopy duplicates the file into the destination, leaving the source intact
	OperationCopy Operation = "copy"

	// OperationMove moves the file into the destination
	OperationMove Operation = "move"

	// OperationRename renames the file inside its own directory
	OperationRename Operation = "rename"
)

// Verb returns the past-tense verb used in summaries
func (o Operation) Verb() string {
	switch o {
	case OperationCopy:
		return "copied"
	case OperationMove:
		return "moved"
	case OperationRename:
		return "renamed"
	default:
		return string(o)
	}
}

// NeedsDestination reports whether the operation targets a separate directory
func (o Operation) NeedsDestination() bool {
	return o == OperationCopy || o == OperationMove
}

// Policy is the strategy applied to every conflict in one batch
type Policy string

const (
	// PolicyNone means no policy was chosen; conflicts stop the batch
	PolicyNone Policy = ""

	// PolicyOverwrite deletes conflicting destinations before transferring
	PolicyOverwrite Policy = "overwrite"

	// PolicyCreateCopy writes conflicting entries to "<name> (Copy)<ext>"
	PolicyCreateCopy Policy = "create-copy"

	// PolicySkip leaves conflicting entries untouched
	PolicySkip Policy = "skip"

	// PolicyAbort is only returned by resolvers; the batch stops without I/O
	PolicyAbort Policy = "abort"
)

// IsResolving reports whether the policy lets the executor proceed
func (p Policy) IsResolving() bool {
	return p == PolicyOverwrite || p == PolicyCreateCopy || p == PolicySkip
}

// Status is the terminal state of a batch, used for notifications
type Status string

const (
	// StatusSuccess means every entry was transferred, skipped or unchanged
	StatusSuccess Status = "success"
	// StatusPartialFailure means at least one entry failed
	StatusPartialFailure Status = "partial_failure"
	// StatusAborted means the batch stopped before any filesystem mutation
	StatusAborted Status = "aborted"
)

// Action describes what happened to a single entry
type Action string

const (
	// ActionTransferred means the entry reached its intended destination
	ActionTransferred Action = "transferred"
	// ActionCopiedAside means the entry was written to the alternate "(Copy)" path
	ActionCopiedAside Action = "copied_aside"
	// ActionSkipped means the entry was left alone because of a conflict
	ActionSkipped Action = "skipped"
	// ActionUnchanged means the rename target equals the current name
	ActionUnchanged Action = "unchanged"
	// ActionFailed means the entry's filesystem operation failed
	ActionFailed Action = "failed"
)
