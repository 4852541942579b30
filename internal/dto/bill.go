package dto

// BillUploadResponse is returned after a bill image has been run through
// the extraction pipeline and persisted as an expense.
type BillUploadResponse struct {
	Message string              `json:"message"`
	Expense TransactionResponse `json:"expense"`
}
