package domain

import "errors"

// ErrMissingInput is returned when a required input field is absent from the
// initial state. The pipeline fails before any step runs rather than
// substituting a default.
var ErrMissingInput = errors.New("missing required input field")

// ErrInvalidInput is returned when an input field is present but holds a
// value of the wrong type. Like ErrMissingInput, this is a contract
// violation and fails loudly instead of degrading to a default.
var ErrInvalidInput = errors.New("invalid input field")

// ErrNoSteps is returned when a pipeline is constructed without steps.
var ErrNoSteps = errors.New("pipeline has no steps")

// ErrNilStep is returned when a nil step is registered.
var ErrNilStep = errors.New("nil step")
