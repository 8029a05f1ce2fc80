package model

import "errors"

var (
	// ErrInvalidCityCount is returned when a requested city count is not
	// a positive integer or exceeds the backing dataset.
	ErrInvalidCityCount = errors.New("model: city count must be a positive integer within the dataset")

	// ErrInvalidParams is returned when a parameter set is incomplete or
	// economically meaningless (nonpositive scalars, θ ≤ 1, wrong theta
	// length).
	ErrInvalidParams = errors.New("model: invalid parameters")

	// ErrInvalidData is returned when the distance matrix or population
	// vector cannot back the requested city count.
	ErrInvalidData = errors.New("model: invalid distance or population data")

	// ErrDimension is returned when a solution vector does not have the
	// expected 4N−1 length.
	ErrDimension = errors.New("model: solution vector has wrong length")
)
