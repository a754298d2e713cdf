package repository

import (
	"EnrollHub/entity"
	"EnrollHub/internal/service/enrollment"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSessionDocumentKeepsClearedFields(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	stale := enrollment.NewState("s1", entity.LocaleEnglish, now)
	stale.Errors = map[string]string{"email": "Please enter a valid email address."}
	stale.Focus = "email"
	stale.Verdict = &entity.Verdict{Reason: entity.ReasonAmountMismatch}
	stale.Form.Screenshot = "data:image/png;base64,AAAA"
	stale.Form.HasScreenshot = true

	cleared := stale.Clone()
	cleared.Errors = nil
	cleared.Focus = ""
	cleared.Verdict = nil
	cleared.Form.Screenshot = ""
	cleared.Form.HasScreenshot = false

	raw, err := bson.Marshal(cleared)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	for _, key := range []string{"errors", "focus", "verdict"} {
		assert.Contains(t, doc, key)
	}
	form, ok := doc["form"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "", form["screenshot"])

	// decoding the replacement over a previously loaded session leaves nothing stale
	loaded := stale.Clone()
	require.NoError(t, bson.Unmarshal(raw, loaded))
	assert.Nil(t, loaded.Errors)
	assert.Empty(t, loaded.Focus)
	assert.Nil(t, loaded.Verdict)
	assert.Empty(t, loaded.Form.Screenshot)
	assert.False(t, loaded.Form.HasScreenshot)
}
