package repository

import (
	"EnrollHub/internal/service/translation"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedTarget names a collection and the field its seed records declare their id in.
type SeedTarget struct {
	Collection string
	IDField    string
	schema     *translation.Schema
	prepare    func(doc bson.M) error
}

var (
	ProgramSeed       = SeedTarget{Collection: programsCollection, IDField: "id", schema: &translation.ProgramSchema}
	PaymentMethodSeed = SeedTarget{Collection: paymentMethodsCollection, IDField: "value", schema: &translation.PaymentMethodSchema}
	CouponSeed        = SeedTarget{Collection: couponsCollection, IDField: "id", prepare: prepareCoupon}
)

// Seed upserts records by their declared id with $set semantics. Records without
// an id are skipped with a warning. Legacy shaped records are stored as given and
// normalized when read.
func (m *MongoDB) Seed(ctx context.Context, target SeedTarget, records []map[string]any) (int, error) {
	log := m.log.With(slog.String("collection", target.Collection))
	written := 0
	for i, record := range records {
		id, doc, err := target.document(record)
		if err != nil {
			log.With(slog.Int("index", i)).Warn("seed record skipped", slog.String("reason", err.Error()))
			continue
		}
		if target.schema != nil {
			if _, legacy := m.normalizer.Classify(record, target.IDField, *target.schema).(translation.LegacyShape); legacy {
				log.With(slog.String("id", id)).Warn("seed record has no default locale translation")
			}
		}
		if err = m.upsertRaw(ctx, target.Collection, id, doc); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (t SeedTarget) document(record map[string]any) (string, bson.M, error) {
	id, _ := record[t.IDField].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil, fmt.Errorf("missing %q", t.IDField)
	}
	doc := make(bson.M, len(record))
	maps.Copy(doc, record)
	delete(doc, t.IDField)
	if t.prepare != nil {
		if err := t.prepare(doc); err != nil {
			return "", nil, err
		}
	}
	return id, doc, nil
}

// prepareCoupon stores codes in upper case and expiry dates as BSON dates.
func prepareCoupon(doc bson.M) error {
	if code, ok := doc["code"].(string); ok {
		doc["code"] = strings.ToUpper(strings.TrimSpace(code))
	}
	if raw, ok := doc["expires_at"].(string); ok {
		if raw == "" {
			delete(doc, "expires_at")
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("expires_at: %w", err)
		}
		doc["expires_at"] = t
	}
	return nil
}
