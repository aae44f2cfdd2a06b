package service

import "errors"

// ErrUnauthorized is returned by BoxOffice.Stats when the supplied
// password does not match the configured secret.  Handlers translate it
// into an HTTP 401 response.
var ErrUnauthorized = errors.New("unauthorized")
