package domain

import (
	"errors"
	"strings"
)

// Manifest is the structured description of a scene the user wants to
// turn into an image prompt. The four basic fields are required; the
// advanced attributes are optional free-text refinements.
type Manifest struct {
	Characters string
	Setting    string
	Story      string
	Style      string

	// Advanced holds optional attribute overrides keyed by attribute
	// name (see AdvancedKeys). Values are free text, empty by default.
	Advanced map[string]string
}

// AdvancedKeys lists the recognized advanced attribute names in display
// order.
var AdvancedKeys = []string{
	"lighting",
	"color_palette",
	"camera_angle",
	"composition",
	"time_of_day",
	"weather_effects",
	"textures",
	"props",
	"flora_fauna",
	"architecture_details",
	"environment_hazards",
	"mood_atmosphere",
	"character_emotions",
	"artist_references",
	"genre_subgenre",
	"medium",
	"aspect_ratio",
	"resolution_detail",
}

// ErrIncompleteManifest indicates one or more required basic fields are
// missing.
var ErrIncompleteManifest = errors.New("manifest is missing required fields")

// Validate checks that all four basic fields are present.
func (m Manifest) Validate() error {
	if m.MissingFields() != nil {
		return ErrIncompleteManifest
	}
	return nil
}

// MissingFields returns the names of required basic fields that are
// empty, in display order. Returns nil when the manifest is complete.
func (m Manifest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(m.Characters) == "" {
		missing = append(missing, "Characters")
	}
	if strings.TrimSpace(m.Setting) == "" {
		missing = append(missing, "Setting")
	}
	if strings.TrimSpace(m.Story) == "" {
		missing = append(missing, "Story")
	}
	if strings.TrimSpace(m.Style) == "" {
		missing = append(missing, "Style")
	}
	return missing
}

// Merged flattens the basic fields and any non-empty advanced
// attributes into a single map, the shape the composer task consumes.
func (m Manifest) Merged() map[string]string {
	merged := map[string]string{
		"characters": m.Characters,
		"setting":    m.Setting,
		"story":      m.Story,
		"style":      m.Style,
	}
	for _, key := range AdvancedKeys {
		if v, ok := m.Advanced[key]; ok && strings.TrimSpace(v) != "" {
			merged[key] = v
		}
	}
	return merged
}

// Clone returns a deep copy of the manifest.
func (m Manifest) Clone() Manifest {
	out := m
	if m.Advanced != nil {
		out.Advanced = make(map[string]string, len(m.Advanced))
		for k, v := range m.Advanced {
			out.Advanced[k] = v
		}
	}
	return out
}
