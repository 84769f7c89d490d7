package quotient

import (
	"encoding/json"
	"fmt"

	"github.com/dsynth/quotientsynth/pkg/family"
)

// Builder constructs the initial Quotient — the quotient MDP plus its
// coloring — from a rewritten sketch program and its declared design
// space. A production collaborator would compile PRISM-like guarded
// commands into an explicit MDP; this core only depends on the
// interface, the same pattern as ModelChecker and MemoryModel.
type Builder interface {
	Build(sketch string, space family.DesignSpace) (*Quotient, error)
}

// jsonModel is the wire shape JSONBuilder decodes: an explicit
// enumeration of a quotient MDP's states, choices, and their enabling
// hole-option requirements. Serialized explicit-model input is how real
// model-checker front ends (PRISM's explicit engine, Storm's drn
// format) accept a model without a guarded-command compiler.
type jsonModel struct {
	InitialState int `json:"initial_state"`
	States []jsonState `json:"states"`
	Holes []jsonHoleOptions `json:"holes,omitempty"`
}

type jsonState struct {
	Target bool `json:"target,omitempty"`
	Choices []jsonChoice `json:"choices"`
}

type jsonChoice struct {
	Successors []jsonSuccessor `json:"successors"`
	Reward float64 `json:"reward,omitempty"`
	Requirements []jsonRequirement `json:"requirements,omitempty"`
}

type jsonSuccessor struct {
	State int `json:"state"`
	Probability float64 `json:"probability"`
}

type jsonRequirement struct {
	Hole int `json:"hole"`
	Option int `json:"option"`
}

// jsonHoleOptions is unused by JSONBuilder.Build (the design space is
// supplied by the caller, already parsed by pkg/sketchio) but is kept
// on the wire shape so a quotient description is self-documenting when
// inspected standalone.
type jsonHoleOptions struct {
	Name string `json:"name"`
	Options []string `json:"options"`
}

// JSONBuilder is a reference Builder: it treats sketch not as PRISM
// source but as a JSON-encoded jsonModel, letting this repo's CLI and
// tests exercise the full pipeline without a real guarded-command
// compiler. A production deployment supplies a Builder backed by an
// actual PRISM/Storm front end instead.
type JSONBuilder struct{}

// NewJSONBuilder constructs the reference explicit-model Builder.
func NewJSONBuilder() *JSONBuilder { return &JSONBuilder{} }

// Build implements Builder.
func (b *JSONBuilder) Build(sketch string, space family.DesignSpace) (*Quotient, error) {
	var m jsonModel
	if err := json.Unmarshal([]byte(sketch), &m); err != nil {
 return nil, fmt.Errorf("quotient: decode explicit model: %w", err)
	}

	model := &Model{
 NumStates: len(m.States),
 InitialState: m.InitialState,
 StateChoices: make([][]int, len(m.States)),
 Target: make([]bool, len(m.States)),
	}
	coloring := &Coloring{
 StateToHoles: make([][]int, len(m.States)),
	}

	choiceIdx := 0
	for s, state := range m.States {
 model.Target[s] = state.Target
 for _, choice := range state.Choices {
 successors := make([]Successor, len(choice.Successors))
 for i, succ := range choice.Successors {
 if succ.State < 0 || succ.State >= len(m.States) {
 return nil, fmt.Errorf("quotient: state %d choice references out-of-range successor %d", s, succ.State)
 }
 successors[i] = Successor{State: succ.State, Probability: succ.Probability}
 }
 model.Successors = append(model.Successors, successors)
 model.Reward = append(model.Reward, choice.Reward)
 model.StateChoices[s] = append(model.StateChoices[s], choiceIdx)

 reqs := make([]HoleOption, len(choice.Requirements))
 holesSeen := map[int]bool{}
 for i, r := range choice.Requirements {
 if r.Hole < 0 || r.Hole >= space.NumHoles() {
 return nil, fmt.Errorf("quotient: choice %d requires out-of-range hole %d", choiceIdx, r.Hole)
 }
 reqs[i] = HoleOption{Hole: r.Hole, Option: r.Option}
 if !holesSeen[r.Hole] {
 holesSeen[r.Hole] = true
 coloring.StateToHoles[s] = append(coloring.StateToHoles[s], r.Hole)
 }
 }
 coloring.Requirements = append(coloring.Requirements, reqs)
 choiceIdx++
 }
	}

	return NewQuotient(model, coloring), nil
}
