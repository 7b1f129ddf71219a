package dataset

import "errors"

// Load-time failures. A dataset that trips any of these is rejected whole.
var (
	ErrInvalidDataset  = errors.New("invalid dataset")
	ErrDuplicateNode   = errors.New("duplicate node key")
	ErrUnknownCluster  = errors.New("unknown cluster")
	ErrUnknownTag      = errors.New("unknown tag")
	ErrUnknownEndpoint = errors.New("edge endpoint not in node list")
	ErrDuplicateEdge   = errors.New("duplicate edge")
	ErrNegativeWeight  = errors.New("negative edge weight")
	ErrInvalidWeight   = errors.New("edge weight is not a finite number")
)
