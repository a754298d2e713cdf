package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDocument(t *testing.T) {
	tests := []struct {
		name    string
		target  SeedTarget
		record  map[string]any
		wantID  string
		wantErr bool
	}{
		{"program", ProgramSeed, map[string]any{"id": "daycare", "label": "Daycare", "price": 300.0}, "daycare", false},
		{"payment method by value", PaymentMethodSeed, map[string]any{"value": "bank", "label": "Bank"}, "bank", false},
		{"missing id", ProgramSeed, map[string]any{"label": "Orphan"}, "", true},
		{"blank id", CouponSeed, map[string]any{"id": "  ", "code": "X"}, "", true},
		{"bad expiry", CouponSeed, map[string]any{"id": "c1", "code": "x", "expires_at": "tomorrow"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, doc, err := tt.target.document(tt.record)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.NotContains(t, doc, tt.target.IDField)
		})
	}
}

func TestSeedCouponPrepared(t *testing.T) {
	record := map[string]any{"id": "c1", "code": " welcome10 ", "expires_at": "2027-01-01T00:00:00Z"}
	_, doc, err := CouponSeed.document(record)
	require.NoError(t, err)

	assert.Equal(t, "WELCOME10", doc["code"])
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), doc["expires_at"])
	assert.Equal(t, " welcome10 ", record["code"], "input record is not modified")
}
