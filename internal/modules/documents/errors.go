package documents

import "errors"

// Someone else's document deliberately reads as not found, so there is
// no separate ownership error.
var ErrDocumentNotFound = errors.New("document not found")
