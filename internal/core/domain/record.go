package domain

// OutputRecord is one normalised unit of result data. Records are created
// by the normaliser from one API result element or one synthesised
// diagnostic message and are not modified afterwards.
type OutputRecord struct {
	// JSON is the record payload.
	JSON map[string]any `json:"json"`

	// Binary holds named binary attachments (e.g., a downloaded document).
	Binary map[string]BinaryData `json:"binary,omitempty"`

	// Error is set on error-tagged records produced in continue-on-fail mode.
	// In that case JSON is the unmodified input item's payload.
	Error string `json:"error,omitempty"`

	// PairedItem is the index of the input item that produced this record.
	PairedItem int `json:"paired_item"`
}

// IsError returns true if the record captures a failed item.
func (r OutputRecord) IsError() bool {
	return r.Error != ""
}

// ItemOutcome is the result of processing one input item: either zero or
// more records, or a captured error.
type ItemOutcome struct {
	// Index is the input item index.
	Index int

	// Records holds the produced records. For a failed item in
	// continue-on-fail mode it holds the single error-tagged record.
	Records []OutputRecord

	// Err is the captured failure, nil on success.
	Err *ItemError
}

// Failed returns true if the item failed.
func (o ItemOutcome) Failed() bool {
	return o.Err != nil
}

// RunResult holds exactly one outcome per input item, in item order.
type RunResult struct {
	// ExecutionID identifies the run in logs.
	ExecutionID string

	// Action is the action that was dispatched.
	Action Action

	// Outcomes holds one entry per input item.
	Outcomes []ItemOutcome
}

// Records flattens all outcomes into the final output collection.
func (r *RunResult) Records() []OutputRecord {
	var records []OutputRecord
	for _, o := range r.Outcomes {
		records = append(records, o.Records...)
	}
	return records
}

// Failures returns the outcomes of failed items.
func (r *RunResult) Failures() []ItemOutcome {
	var failed []ItemOutcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}
