package verification

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/i18n"
	"context"
	"fmt"
	"math"
)

// Analyzer is the external AI call that reads a payment screenshot.
type Analyzer interface {
	AnalyzePayment(ctx context.Context, image string, expectedAmount float64, transactionID string) (entity.PaymentAnalysis, error)
}

type ScreenshotStrategy struct {
	analyzer Analyzer
}

func NewScreenshotStrategy(analyzer Analyzer) *ScreenshotStrategy {
	return &ScreenshotStrategy{analyzer: analyzer}
}

func (s *ScreenshotStrategy) Type() entity.ProofType {
	return entity.ProofScreenshot
}

// Verify trusts the analyzer's validity flag only when the amount it read equals
// the amount due.
func (s *ScreenshotStrategy) Verify(ctx context.Context, proof entity.PaymentProof, expectedAmount float64) (entity.Verdict, error) {
	if proof.Screenshot == "" {
		return entity.Verdict{
			IsValid: false,
			Reason:  entity.ReasonMissingScreenshot,
			Message: i18n.Tc(ctx, "verify.missing_screenshot", "Please upload a screenshot of your payment."),
		}, nil
	}
	if s.analyzer == nil {
		return entity.Verdict{}, fmt.Errorf("screenshot analyzer not configured")
	}

	analysis, err := s.analyzer.AnalyzePayment(ctx, proof.Screenshot, expectedAmount, proof.TransactionID)
	if err != nil {
		return entity.Verdict{}, fmt.Errorf("analyze screenshot: %w", err)
	}

	verdict := entity.Verdict{
		IsValid:           analysis.IsValid,
		ExtractedAmount:   analysis.ExtractedAmount,
		TransactionNumber: analysis.TransactionNumber,
		Reason:            analysis.Reason,
	}

	if verdict.IsValid && !AmountsMatch(analysis.ExtractedAmount, expectedAmount) {
		verdict.IsValid = false
		verdict.Reason = entity.ReasonAmountMismatch
	}

	switch {
	case verdict.IsValid:
		verdict.Message = i18n.Tc(ctx, "verify.valid", "Payment verified.")
	case verdict.Reason == entity.ReasonAmountMismatch:
		verdict.Message = i18n.Tc(ctx, "verify.amount_mismatch", "The amount on the receipt does not match the total due.")
	default:
		if verdict.Reason == "" {
			verdict.Reason = entity.ReasonRejected
		}
		verdict.Message = rejection(ctx, verdict.Reason)
	}
	return verdict, nil
}

// analyzerReasons lists the codes the analyzer is asked to answer with that have
// their own message; any other code gets the generic rejection.
var analyzerReasons = map[string]string{
	entity.ReasonNotAReceipt: "This image is not a payment receipt.",
	entity.ReasonUnreadable:  "The receipt could not be read. Please upload a clearer screenshot.",
}

func rejection(ctx context.Context, reason string) string {
	if fallback, ok := analyzerReasons[reason]; ok {
		return i18n.Tc(ctx, "verify."+reason, fallback)
	}
	return i18n.Tc(ctx, "verify.rejected", "The screenshot was not accepted as proof of payment.")
}

// AmountsMatch compares to the cent; a missing amount never matches.
func AmountsMatch(extracted *float64, expected float64) bool {
	if extracted == nil {
		return false
	}
	return math.Round(*extracted*100) == math.Round(expected*100)
}
