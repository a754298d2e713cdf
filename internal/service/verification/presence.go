package verification

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/i18n"
	"context"
	"strings"
)

// LinkStrategy accepts any non-empty payment link. The link content is not fetched.
type LinkStrategy struct{}

func (LinkStrategy) Type() entity.ProofType {
	return entity.ProofLink
}

func (LinkStrategy) Verify(ctx context.Context, proof entity.PaymentProof, _ float64) (entity.Verdict, error) {
	if strings.TrimSpace(proof.Link) == "" {
		return entity.Verdict{
			IsValid: false,
			Reason:  entity.ReasonMissingLink,
			Message: i18n.Tc(ctx, "verify.missing_link", "Please provide the payment link."),
		}, nil
	}
	return entity.Verdict{
		IsValid: true,
		Message: i18n.Tc(ctx, "verify.link_pending", "Payment link received."),
	}, nil
}

// TransactionStrategy accepts any non-empty transaction id and echoes it back.
type TransactionStrategy struct{}

func (TransactionStrategy) Type() entity.ProofType {
	return entity.ProofTransactionID
}

func (TransactionStrategy) Verify(ctx context.Context, proof entity.PaymentProof, _ float64) (entity.Verdict, error) {
	id := strings.TrimSpace(proof.TransactionID)
	if id == "" {
		return entity.Verdict{
			IsValid: false,
			Reason:  entity.ReasonMissingTransactionID,
			Message: i18n.Tc(ctx, "verify.missing_transaction_id", "Please provide the transaction ID."),
		}, nil
	}
	return entity.Verdict{
		IsValid:           true,
		TransactionNumber: id,
		Message:           i18n.Tc(ctx, "verify.transaction_pending", "Transaction ID received."),
	}, nil
}
