package bracket

import "errors"

var (
	ErrInsufficientParticipants = errors.New("at least two participants are required")
	ErrDuplicateCompetitor      = errors.New("competitor registered more than once")
	ErrUnknownSeeding           = errors.New("unknown seeding policy")
	ErrUnknownMatch             = errors.New("match does not exist in bracket")
	ErrInvalidMatchState        = errors.New("match is not ready for this operation")
	ErrUnknownCompetitor        = errors.New("winner is not assigned to the match")
	ErrAlreadyCompleted         = errors.New("match result has already been reported")
	ErrInvalidScoreOrdering     = errors.New("winner score must be greater than loser score")
)

var ErrInvalidCompetitor = errors.New("competitor id is required")
