package models

import (
	"fmt"
	"strings"
)

// StageChoice is one member of the stage enumeration: the persisted value and
// the human-readable label shown by clients.
type StageChoice struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// StageSet is the closed enumeration of classification stage labels.
//
// The set is configured once at startup and injected into every component
// that validates or lists stages; no component carries its own literal copy.
// The label vocabulary has drifted across deployments of this system, so the
// set is data, not code.
type StageSet struct {
	choices []StageChoice
	values  map[string]string
}

// DefaultStages is the historical stage vocabulary used when configuration
// does not override it.
const DefaultStages = "stage1:Stage 1,stage2:Stage 2,stage3:Stage 3,stage4:Stage 4,normal:Normal,notapplicable:Not Applicable,notunderstand:Not Understand"

// ParseStageSet builds a StageSet from a comma-separated list of
// "value:display" pairs. The display part may be omitted, in which case the
// value doubles as the label. Returns an error on empty input, empty values
// or duplicated values.
func ParseStageSet(spec string) (*StageSet, error) {
	set := &StageSet{values: make(map[string]string)}

	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		value, display, found := strings.Cut(pair, ":")
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("empty stage value in %q", pair)
		}
		if !found || strings.TrimSpace(display) == "" {
			display = value
		}
		display = strings.TrimSpace(display)

		if _, exists := set.values[value]; exists {
			return nil, fmt.Errorf("duplicate stage value %q", value)
		}

		set.values[value] = display
		set.choices = append(set.choices, StageChoice{Value: value, Display: display})
	}

	if len(set.choices) == 0 {
		return nil, fmt.Errorf("stage set is empty")
	}

	return set, nil
}

// Contains reports whether value is a member of the set.
func (s *StageSet) Contains(value string) bool {
	_, ok := s.values[value]
	return ok
}

// Display returns the human-readable label for value, or the value itself
// when it is not a member of the set.
func (s *StageSet) Display(value string) string {
	if display, ok := s.values[value]; ok {
		return display
	}
	return value
}

// Choices returns the members in configuration order.
func (s *StageSet) Choices() []StageChoice {
	out := make([]StageChoice, len(s.choices))
	copy(out, s.choices)
	return out
}

// Values returns the persisted values in configuration order.
func (s *StageSet) Values() []string {
	out := make([]string, 0, len(s.choices))
	for _, c := range s.choices {
		out = append(out, c.Value)
	}
	return out
}
