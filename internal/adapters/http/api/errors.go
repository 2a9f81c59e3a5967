package api

import "errors"

// errNotJSON is the body for requests whose payload cannot be decoded.
var errNotJSON = errors.New("Request body must be JSON")
