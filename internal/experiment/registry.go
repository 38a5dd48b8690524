package experiment

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/effect"
)

// Opener is a book whose open state can be driven.
type Opener interface {
	SetOpen(open bool)
	Toggle()
}

// Action is one scripted interaction with a book.
type Action func(b Opener, l *effect.Loop)

var actions = map[string]Action{
	config.ActionOpen:   func(b Opener, _ *effect.Loop) { b.SetOpen(true) },
	config.ActionClose:  func(b Opener, _ *effect.Loop) { b.SetOpen(false) },
	config.ActionToggle: func(b Opener, _ *effect.Loop) { b.Toggle() },
	config.ActionBurst: func(_ Opener, l *effect.Loop) {
		if l != nil {
			l.Burst()
		}
	},
}

func LookupAction(name string) (Action, error) {
	act, ok := actions[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, config.ErrUnknownAction)
	}
	return act, nil
}

func ListActions() []string {
	return slices.Sorted(maps.Keys(actions))
}
