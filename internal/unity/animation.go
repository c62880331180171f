package unity

import (
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

const (
	classAnimatorStateTransition = 1101
	classAnimatorState           = 1102
	classAnimatorStateMachine    = 1107

	anyState = "Any State"
)

// AnimatorControllers lists .controller files.
func (p *Project) AnimatorControllers() []string {
	return p.listExt(".controller")
}

// AnimationClips lists .anim files.
func (p *Project) AnimationClips() []string {
	return p.listExt(".anim")
}

// TimelinePlayables lists Timeline assets.
func (p *Project) TimelinePlayables() []string {
	return p.listExt(".playable")
}

// AvatarMasks lists avatar mask assets.
func (p *Project) AvatarMasks() []string {
	return p.listExt(".mask")
}

// AnimatorOverrideControllers lists animator override controllers.
func (p *Project) AnimatorOverrideControllers() []string {
	return p.listExt(".overridecontroller")
}

// AnimatorStates returns the distinct state names of a controller.
func (p *Project) AnimatorStates(rel string) []string {
	return p.AnimatorGraph(rel).States
}

// AnimatorGraph reads the states of a controller and the transitions
// between them. Transitions from the state machine's Any State list carry
// From "Any State".
func (p *Project) AnimatorGraph(rel string) types.AnimatorGraph {
	out := types.AnimatorGraph{States: make([]string, 0), Transitions: make([]types.AnimatorTransition, 0)}
	text, ok := p.read(rel)
	if !ok {
		return out
	}

	docs := unityyaml.SplitDocuments(text)
	states := make(map[string]string)
	transitions := make(map[string]unityyaml.Document)
	seen := make(map[string]bool)
	for _, d := range docs {
		switch d.ClassID {
		case classAnimatorState:
			name := d.Name()
			states[d.FileID] = name
			if name != "" && !seen[name] {
				seen[name] = true
				out.States = append(out.States, name)
			}
		case classAnimatorStateTransition:
			transitions[d.FileID] = d
		}
	}

	target := func(transitionID string) (string, bool) {
		t, ok := transitions[transitionID]
		if !ok {
			return "", false
		}
		dst, ok := t.Ref("m_DstState")
		if !ok {
			return "", false
		}
		name, ok := states[dst]
		return name, ok
	}
	for _, d := range docs {
		var from string
		switch d.ClassID {
		case classAnimatorState:
			from = states[d.FileID]
			for _, id := range d.RefList("m_Transitions") {
				if to, ok := target(id); ok {
					out.Transitions = append(out.Transitions, types.AnimatorTransition{From: from, To: to})
				}
			}
		case classAnimatorStateMachine:
			for _, id := range d.RefList("m_AnyStateTransitions") {
				if to, ok := target(id); ok {
					out.Transitions = append(out.Transitions, types.AnimatorTransition{From: anyState, To: to})
				}
			}
		}
	}
	return out
}
