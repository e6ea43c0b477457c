package domain

import "errors"

// ErrNotFound is returned by repositories when the requested record does not
// exist. Adapters map it to a 404 response.
var ErrNotFound = errors.New("record not found")
