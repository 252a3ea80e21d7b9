package level

import (
	"embed"
	"fmt"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the game, in play order.
func Builtin() ([]*Level, error) {
	levels, err := loadFromFS(builtinFS, "levels", "builtin levels")
	if err != nil {
		return nil, fmt.Errorf("loading builtin levels: %w", err)
	}
	return levels, nil
}

// Find returns the level with the given ID and its index in levels.
func Find(levels []*Level, id string) (*Level, int, bool) {
	for i, l := range levels {
		if l.ID == id {
			return l, i, true
		}
	}
	return nil, -1, false
}
