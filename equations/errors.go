package equations

import "errors"

// ErrCityCount is returned by Build when the requested city count is not
// a positive integer. User-facing validation lives on the model layer;
// this sentinel backstops direct package use.
var ErrCityCount = errors.New("equations: city count must be a positive integer")
