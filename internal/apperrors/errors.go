package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrParseFailure indicates that an email carried no usable transaction
// signal: no amount, or neither a type keyword nor a directional cue.
var ErrParseFailure = errors.New("no transaction data found in email")

// ErrNotCreated indicates that a persistence operation failed and nothing was
// stored. Callers decide whether to abort a batch or continue.
var ErrNotCreated = errors.New("resource not created")
