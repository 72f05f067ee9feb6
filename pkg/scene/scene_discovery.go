package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type sceneEntry struct {
	description string
	create      func() *Scene
}

// registry maps scene IDs to their constructors
var registry = map[string]sceneEntry{
	"empty": {
		description: "No surfaces or lights; every pixel is background",
		create:      func() *Scene { return NewScene().WithName("empty") },
	},
	"default": {
		description: "Spheres and a box on a floor, point and directional light",
		create:      NewDefaultScene,
	},
	"mirrors": {
		description: "Mirror floor and wall with a glass sphere; reflections and refractions on",
		create:      NewMirrorsScene,
	},
	"spotlight": {
		description: "A box and a sphere under a single spot light",
		create:      NewSpotlightScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for id, entry := range registry {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: entry.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// CreateScene builds a fresh instance of the named scene
func CreateScene(id string) (*Scene, error) {
	entry, ok := registry[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(sceneIDs(), ", "))
	}
	return entry.create(), nil
}

func sceneIDs() []string {
	var ids []string
	for _, info := range ListScenes() {
		ids = append(ids, info.ID)
	}
	return ids
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-room" -> "Mirror Room"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
