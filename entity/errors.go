package entity

import "errors"

// ErrNotFound is shared by the store and the core so a document that vanished
// mid-operation reaches the HTTP layer as a 404.
var ErrNotFound = errors.New("not found")
