package model

import (
	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/matrix"
)

// Every error returned by this package wraps one of these causes, use
// errors.Is or errors.Cause to tell them apart.
var (
	// invalid hyperparameters, no sampling is attempted
	ErrConfiguration = errors.New("lda: invalid configuration")
	// a word id outside the count tables, the corpus and the model disagree
	ErrIndexOutOfRange = matrix.ErrIndexOutOfRange
	// initialization run twice, sampling before initialization or
	// count tables that no longer agree with the assignments
	ErrState = errors.New("lda: invalid sampler state")
)
