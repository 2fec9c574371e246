package usecase

import (
	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// CheckpointStates holds one conversation state per mandatory checkpoint,
// indexed by ordinal position. Derived from the canonical checkpoint
// sequence so there is exactly one place defining the traversal order.
var CheckpointStates = buildCheckpointStates()

func buildCheckpointStates() []entity.State {
	states := make([]entity.State, 0, len(entity.MandatoryCheckpointSequence))
	for _, key := range entity.MandatoryCheckpointSequence {
		states = append(states, entity.State("checkpoint_"+key))
	}
	return states
}

// checkpointStateIndex returns the ordinal of a checkpoint state, or false
// when the state is not a checkpoint state
func checkpointStateIndex(s entity.State) (int, bool) {
	for i, cs := range CheckpointStates {
		if cs == s {
			return i, true
		}
	}
	return 0, false
}

var checkpointDisplayNames = map[string]string{
	"approaching_border":         "Approaching the border",
	"entering_checkpoint_1":      "Entering checkpoint #1",
	"invited_passport_control_1": "Invited to passport control #1",
	"leaving_checkpoint_1":       "Leaving checkpoint #1 (neutral zone)",
	"entering_checkpoint_2":      "Entering checkpoint #2",
	"invited_passport_control_2": "Invited to passport control #2",
	"leaving_checkpoint_2":       "Leaving checkpoint #2 (border exit)",
}

// CheckpointDisplayName returns the human-readable name of a checkpoint key,
// resolving legacy aliases. Unknown keys fall back to the key itself.
func CheckpointDisplayName(key string) string {
	if name, ok := checkpointDisplayNames[entity.CanonicalCheckpointKey(key)]; ok {
		return name
	}
	return key
}

// SupportedTimezones enumerates the timezone identifiers offered to users.
// Selection happens through buttons, so unknown identifiers should not occur.
var SupportedTimezones = []string{
	"Europe/Minsk",
	"Europe/Warsaw",
	"Europe/Vilnius",
	"UTC",
}

func isSupportedTimezone(tz string) bool {
	for _, s := range SupportedTimezones {
		if s == tz {
			return true
		}
	}
	return false
}
