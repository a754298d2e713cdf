package entity

type ProofType string

const (
	ProofScreenshot    ProofType = "screenshot"
	ProofLink          ProofType = "link"
	ProofTransactionID ProofType = "transaction_id"
)

// PaymentProof is what the student submits as evidence of payment.
// Screenshot holds a data URI and is only kept until the file is stored.
type PaymentProof struct {
	Type             ProofType `json:"type" bson:"type"`
	Screenshot       string    `json:"screenshot,omitempty" bson:"-"`
	ScreenshotFileID string    `json:"screenshot_file_id,omitempty" bson:"screenshot_file_id,omitempty"`
	Link             string    `json:"link,omitempty" bson:"link,omitempty"`
	TransactionID    string    `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
}

const (
	ReasonMissingScreenshot    = "missing_screenshot"
	ReasonMissingLink          = "missing_link"
	ReasonMissingTransactionID = "missing_transaction_id"
	ReasonAmountMismatch       = "amount_mismatch"
	ReasonUnknownProofType     = "unknown_proof_type"
	ReasonVerificationError    = "verification_error"
	ReasonNotAReceipt          = "not_a_receipt"
	ReasonUnreadable           = "unreadable"
	ReasonRejected             = "rejected"
)

// Verdict is the outcome of one verification attempt.
type Verdict struct {
	IsValid           bool     `json:"is_valid" bson:"is_valid"`
	ExtractedAmount   *float64 `json:"extracted_amount,omitempty" bson:"extracted_amount,omitempty"`
	TransactionNumber string   `json:"transaction_number,omitempty" bson:"transaction_number,omitempty"`
	Reason            string   `json:"reason,omitempty" bson:"reason,omitempty"`
	Message           string   `json:"message" bson:"message"`
}

// PaymentAnalysis is the raw answer of the AI screenshot check.
type PaymentAnalysis struct {
	IsValid           bool     `json:"is_valid"`
	ExtractedAmount   *float64 `json:"extracted_amount"`
	TransactionNumber string   `json:"transaction_number"`
	Reason            string   `json:"reason"`
}
