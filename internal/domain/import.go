package domain

// RejectReason explains why a deal in a batch was not imported.
type RejectReason string

const (
	ReasonDuplicate          RejectReason = "duplicate"
	ReasonIntegrityViolation RejectReason = "storage integrity violation"
	ReasonProcessingError    RejectReason = "processing error"
	ReasonCancelled          RejectReason = "cancelled"
)

// ImportOutcome is the result of one import attempt. An empty Reason means
// the deal was imported.
type ImportOutcome struct {
	DealID string
	Reason RejectReason
}

// Imported returns a successful outcome for dealID.
func Imported(dealID string) ImportOutcome {
	return ImportOutcome{DealID: dealID}
}

// Rejected returns a rejected outcome for dealID.
func Rejected(dealID string, reason RejectReason) ImportOutcome {
	return ImportOutcome{DealID: dealID, Reason: reason}
}

// IsImported reports whether the deal was committed.
func (o ImportOutcome) IsImported() bool {
	return o.Reason == ""
}

// ImportError pairs a rejected deal with the reason.
type ImportError struct {
	DealID string
	Reason RejectReason
}

// ImportSummary is the aggregate result of one batch.
// Imported + Skipped always equals the batch size and len(Errors) equals Skipped.
type ImportSummary struct {
	BatchID  string
	Imported int
	Skipped  int
	Errors   []ImportError
}

// Summarize folds per-record outcomes, indexed by input position, into a summary.
// Errors keep input order.
func Summarize(batchID string, outcomes []ImportOutcome) *ImportSummary {
	summary := &ImportSummary{
		BatchID: batchID,
		Errors:  []ImportError{},
	}

	for _, o := range outcomes {
		if o.IsImported() {
			summary.Imported++
			continue
		}

		summary.Skipped++
		summary.Errors = append(summary.Errors, ImportError{DealID: o.DealID, Reason: o.Reason})
	}

	return summary
}

// RejectedCount returns the number of rejections with the given reason.
func (s *ImportSummary) RejectedCount(reason RejectReason) int {
	n := 0
	for _, e := range s.Errors {
		if e.Reason == reason {
			n++
		}
	}
	return n
}
