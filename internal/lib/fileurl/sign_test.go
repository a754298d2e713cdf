package fileurl

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func query(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query()
}

func TestSignerCheck(t *testing.T) {
	signer := NewSigner("secret", time.Hour)
	link := signer.Link("65f0c0ffee")
	require.True(t, strings.HasPrefix(link, "/api/v1/files/65f0c0ffee?"))
	q := query(t, link)

	tests := []struct {
		name    string
		signer  *Signer
		fileID  string
		expires string
		sig     string
		want    error
	}{
		{"valid", signer, "65f0c0ffee", q.Get("expires"), q.Get("sig"), nil},
		{"other secret", NewSigner("other", time.Hour), "65f0c0ffee", q.Get("expires"), q.Get("sig"), ErrBadSignature},
		{"other file", signer, "another", q.Get("expires"), q.Get("sig"), ErrBadSignature},
		{"bad expiry", signer, "65f0c0ffee", "not-a-number", q.Get("sig"), ErrMalformed},
		{"no signature", signer, "65f0c0ffee", q.Get("expires"), "", ErrMalformed},
		{"nil signer", nil, "65f0c0ffee", q.Get("expires"), q.Get("sig"), ErrBadSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.signer.Check(tt.fileID, tt.expires, tt.sig)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignerExpired(t *testing.T) {
	signer := NewSigner("secret", time.Minute)
	q := query(t, signer.Link("abc"))

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.ErrorIs(t, signer.Check("abc", q.Get("expires"), q.Get("sig")), ErrExpired)
}

func TestNilSigner(t *testing.T) {
	assert.Nil(t, NewSigner("", time.Minute))
	var signer *Signer
	assert.Empty(t, signer.Link("abc"))
}
