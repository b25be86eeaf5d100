package types

// TransactionTrace is one level of a transaction's execution. Pre
// traces ran before this level's own logic, inline traces ran as
// part of it and post traces ran after it. Children are owned by
// their parent and their order is significant.
type TransactionTrace struct {
	TransactionId   Hash
	ExecutionStatus ExecutionStatus
	ReturnValue     []byte
	Error           string
	// State changes produced directly at this level, if any.
	StateSet *TransactionExecutingStateSet

	PreTraces    []*TransactionTrace
	InlineTraces []*TransactionTrace
	PostTraces   []*TransactionTrace
}

// TraceSummary is the aggregated view of a trace tree.
type TraceSummary struct {
	// Successful is true only if the root and every descendant executed.
	Successful bool `cramberry:"1"`
	// StateChanges is the raw stream, regardless of outcome.
	StateChanges []TransactionExecutingStateSet `cramberry:"2"`
	// ValidStateChanges are the changes that actually took effect.
	ValidStateChanges []TransactionExecutingStateSet `cramberry:"3"`
}
