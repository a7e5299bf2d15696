package domain

import (
	"github.com/google/uuid"
)

type CompetitorKind string

const (
	KindPlayer CompetitorKind = "player"
	KindTeam   CompetitorKind = "team"
)

func (k CompetitorKind) Valid() bool {
	return k == KindPlayer || k == KindTeam
}

// Competitor is a player or a team owned by the surrounding application.
// Rating is only read by rating based seeding.
type Competitor struct {
	ID     uuid.UUID
	Kind   CompetitorKind
	Name   string
	Rating int
}
