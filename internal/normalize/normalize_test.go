package normalize

import (
	"testing"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Dota 2", want: "dota 2"},
		{in: "  League   of\tLegends ", want: "league of legends"},
		{in: "ＣＳ２", want: "cs2"},
		{in: "Straße", want: "strasse"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.in), tt.in)
	}
}

func TestScope(t *testing.T) {
	assert.Equal(t, domain.GlobalScope, Scope(""))
	assert.Equal(t, domain.GlobalScope, Scope("   "))
	assert.Equal(t, domain.GlobalScope, Scope("GLOBAL"))
	assert.Equal(t, domain.Scope("valorant"), Scope("Valorant"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Team Liquid", Display("  Team\t Liquid "))
	assert.Equal(t, "CS2", Display("ＣＳ２"))
}
