// Package verification checks payment proof against the amount due.
package verification

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

// Strategy verifies one kind of payment proof.
type Strategy interface {
	Type() entity.ProofType
	Verify(ctx context.Context, proof entity.PaymentProof, expectedAmount float64) (entity.Verdict, error)
}

// Verifier dispatches a proof to the strategy registered for its type.
// It never returns an error: every failure becomes an invalid verdict.
type Verifier struct {
	strategies map[entity.ProofType]Strategy
	log        *slog.Logger
}

func New(log *slog.Logger, strategies ...Strategy) *Verifier {
	v := &Verifier{
		strategies: make(map[entity.ProofType]Strategy),
		log:        log.With(sl.Module("verification")),
	}
	for _, s := range strategies {
		v.Register(s)
	}
	return v
}

// Register adds or replaces the strategy for its proof type.
func (v *Verifier) Register(s Strategy) {
	v.strategies[s.Type()] = s
}

func (v *Verifier) Verify(ctx context.Context, proof entity.PaymentProof, expectedAmount float64) (verdict entity.Verdict) {
	logger := v.log.With(
		slog.String("type", string(proof.Type)),
		slog.Float64("expected", expectedAmount),
	)

	strategy, ok := v.strategies[proof.Type]
	if !ok {
		logger.Debug("no strategy for proof type")
		return entity.Verdict{
			IsValid: false,
			Reason:  entity.ReasonUnknownProofType,
			Message: i18n.Tc(ctx, "verify.unknown_type", "Please choose how you want to prove your payment."),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("verification panicked", sl.Err(fmt.Errorf("%v", r)))
			verdict = failure(ctx)
		}
	}()

	verdict, err := strategy.Verify(ctx, proof, expectedAmount)
	if err != nil {
		logger.Error("verification failed", sl.Err(err))
		return failure(ctx)
	}

	logger.With(
		slog.Bool("valid", verdict.IsValid),
		slog.String("reason", verdict.Reason),
	).Debug("payment verified")
	return verdict
}

func failure(ctx context.Context) entity.Verdict {
	return entity.Verdict{
		IsValid: false,
		Reason:  entity.ReasonVerificationError,
		Message: i18n.Tc(ctx, "verify.error", "We could not verify your payment right now. Please try again."),
	}
}
