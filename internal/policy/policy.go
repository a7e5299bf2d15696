package policy

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrUnknownOperation = errors.New("unknown operation")
)

type Operation string

const (
	ReportMatch     Operation = "report_match"
	GenerateBracket Operation = "generate_bracket"
	StartMatch      Operation = "start_match"
	ReportResult    Operation = "report_result"
	Import          Operation = "import"
)

var operations = mapset.NewSet(ReportMatch, GenerateBracket, StartMatch, ReportResult, Import)

type Role string

// Anyone in an allow list lets every actor through, anonymous ones included.
const Anyone Role = "*"

// Actor is whoever asks for a state change. Identity is established outside the engine.
type Actor struct {
	ID    string
	Roles mapset.Set[Role]
}

func NewActor(id string, roles ...Role) Actor {
	return Actor{
		ID:    id,
		Roles: mapset.NewSet(roles...),
	}
}

// ParseRoles reads a comma separated role list.
func ParseRoles(s string) []Role {
	var roles []Role
	for _, r := range strings.Split(s, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			roles = append(roles, Role(r))
		}
	}
	return roles
}

type Rule struct {
	Operation string   `toml:"operation"`
	Allow     []string `toml:"allow"`
}

// Policy maps every guarded operation to the roles allowed to run it.
// Operations without a rule are denied.
type Policy struct {
	allow map[Operation]mapset.Set[Role]
}

func New(rules []Rule) (*Policy, error) {
	p := &Policy{allow: make(map[Operation]mapset.Set[Role])}
	for _, rule := range rules {
		op := Operation(rule.Operation)
		if !operations.Contains(op) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, rule.Operation)
		}
		if p.allow[op] == nil {
			p.allow[op] = mapset.NewSet[Role]()
		}
		for _, role := range rule.Allow {
			p.allow[op].Add(Role(role))
		}
	}
	return p, nil
}

// AllowAll returns a policy that lets anyone run every operation.
func AllowAll() *Policy {
	p := &Policy{allow: make(map[Operation]mapset.Set[Role])}
	for op := range operations.Iter() {
		p.allow[op] = mapset.NewSet(Anyone)
	}
	return p
}

func (p *Policy) Authorize(actor Actor, op Operation) error {
	allowed := p.allow[op]
	if allowed == nil {
		return fmt.Errorf("%w: %s", ErrForbidden, op)
	}
	if allowed.Contains(Anyone) {
		return nil
	}
	if actor.Roles != nil && allowed.Intersect(actor.Roles).Cardinality() > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, op)
}
