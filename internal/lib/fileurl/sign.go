// Package fileurl signs download links for stored payment screenshots so that an
// admin page can embed them without passing its bearer token in the query string.
package fileurl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"
	"time"
)

const basePath = "/api/v1/files/"

var (
	ErrMalformed    = errors.New("malformed file link")
	ErrExpired      = errors.New("file link expired")
	ErrBadSignature = errors.New("file link signature mismatch")
)

// Signer issues and checks links of the form
// /api/v1/files/{id}?expires={unix}&sig={hex hmac of "id:expires"}.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns nil for an empty secret; a nil Signer issues no links.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Link returns the relative download path for fileID.
func (s *Signer) Link(fileID string) string {
	if s == nil || fileID == "" {
		return ""
	}
	expires := s.now().Add(s.ttl).Unix()
	query := url.Values{}
	query.Set("expires", strconv.FormatInt(expires, 10))
	query.Set("sig", s.mac(fileID, expires))
	return basePath + url.PathEscape(fileID) + "?" + query.Encode()
}

// Check validates the query parameters of a link issued for fileID.
func (s *Signer) Check(fileID, expires, sig string) error {
	if s == nil {
		return ErrBadSignature
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || sig == "" {
		return ErrMalformed
	}
	if s.now().Unix() > exp {
		return ErrExpired
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(fileID, exp))) {
		return ErrBadSignature
	}
	return nil
}

func (s *Signer) mac(fileID string, expires int64) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(fileID))
	h.Write([]byte{':'})
	h.Write(strconv.AppendInt(nil, expires, 10))
	return hex.EncodeToString(h.Sum(nil))
}
