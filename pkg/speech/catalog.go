package speech

import "fmt"

// Phrase identifies a fixed utterance in the message catalog.
// The catalog is the only place user-facing wording lives; callers pass
// phrase keys, never raw strings.
type Phrase int

const (
	PhraseObstacleAhead Phrase = iota
	PhraseObstacleLeft
	PhraseObstacleRight
	PhraseVeryClose
	PhraseObstacleAt
	PhraseLowObstacle
	PhraseReady
	PhraseStopped
	PhraseSensorError
)

// catalog maps phrase keys to spoken text templates.
var catalog = map[Phrase]string{
	PhraseObstacleAhead: "Obstacle ahead",
	PhraseObstacleLeft:  "Obstacle on your left",
	PhraseObstacleRight: "Obstacle on your right",
	PhraseVeryClose:     "Very close, move cautiously",
	PhraseObstacleAt:    "Obstacle at %.1f meters",
	PhraseLowObstacle:   "Low obstacle ahead",
	PhraseReady:         "Navigation assistance started",
	PhraseStopped:       "Navigation assistance stopped",
	PhraseSensorError:   "Depth sensor unavailable",
}

// Text renders a phrase with its arguments.
// Unknown phrases render empty and are dropped by the speaker.
func Text(p Phrase, args ...any) string {
	tmpl, ok := catalog[p]
	if !ok {
		return ""
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Phrases returns every phrase key in the catalog, for prompt pre-caching.
func Phrases() []Phrase {
	keys := make([]Phrase, 0, len(catalog))
	for p := range catalog {
		keys = append(keys, p)
	}
	return keys
}
