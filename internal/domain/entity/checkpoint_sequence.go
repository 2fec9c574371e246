package entity

// MandatoryCheckpointSequence is the single canonical ordered list of
// mandatory checkpoint keys. Conversation states, seed data, and display
// names all index into this sequence instead of keeping their own copies.
var MandatoryCheckpointSequence = []string{
	"approaching_border",
	"entering_checkpoint_1",
	"invited_passport_control_1",
	"leaving_checkpoint_1",
	"entering_checkpoint_2",
	"invited_passport_control_2",
	"leaving_checkpoint_2",
}

// LegacyCheckpointAliases maps renamed internal checkpoint keys from older
// data to their canonical equivalents. The aliasing affects display only.
var LegacyCheckpointAliases = map[string]string{
	"passed_passport_control_1": "invited_passport_control_1",
	"passed_passport_control_2": "invited_passport_control_2",
}

// CanonicalCheckpointKey resolves a possibly legacy checkpoint key to its
// canonical form
func CanonicalCheckpointKey(key string) string {
	if canonical, ok := LegacyCheckpointAliases[key]; ok {
		return canonical
	}
	return key
}
