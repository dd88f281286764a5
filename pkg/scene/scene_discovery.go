package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Info describes a registered scene
type Info struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Group       string `json:"group"`
	// Emits reports whether the scene registers light sources
	Emits bool `json:"emits"`
}

// Group is a set of related scenes
type Group struct {
	Name   string `json:"name"`
	Scenes []Info `json:"scenes"`
}

type entry struct {
	info  Info
	build func(Info, Quality) (*Scene, error)
}

const (
	groupRooms  = "Rooms"
	groupOptics = "Optics"
)

var registry = []entry{
	{Info{ID: "spheres", Description: "Diffuse, mirror, glass and metal spheres in a lit room", Group: groupRooms}, newSpheres},
	{Info{ID: "beams", Description: "Glass cylinder in a room with one traced beam drawn as a forest", Group: groupRooms}, newBeams},
	{Info{ID: "boxhole", Description: "Cube, bound-cut spheres and a floor with a square hole", Group: groupRooms}, newBoxHole},
	{Info{ID: "prism", Description: "BK7 prism dispersing a 5000K line source onto a screen", Group: groupOptics, Emits: true}, newPrism},
	{Info{ID: "lens", Description: "Refracting hemisphere focusing a point source onto a screen", Group: groupOptics, Emits: true}, newLens},
	{Info{ID: "telescope", Description: "Newtonian telescope imaging a distant triangle", Group: groupOptics, Emits: true}, newTelescope},
}

func init() {
	for i := range registry {
		registry[i].info.DisplayName = titleCase(registry[i].info.ID)
	}
}

// Names returns the registered scene IDs in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.info.ID)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the metadata of one scene
func Lookup(id string) (Info, bool) {
	for _, e := range registry {
		if e.info.ID == id {
			return e.info, true
		}
	}
	return Info{}, false
}

// Build assembles the scene id at quality q
func Build(id string, q Quality) (*Scene, error) {
	for _, e := range registry {
		if e.info.ID == id {
			s, err := e.build(e.info, q)
			if err != nil {
				return nil, fmt.Errorf("scene %s: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListGroups returns every scene grouped by category. Groups are sorted by
// name and scenes within a group by display name.
func ListGroups() []Group {
	groupMap := make(map[string][]Info)
	for _, e := range registry {
		groupMap[e.info.Group] = append(groupMap[e.info.Group], e.info)
	}

	var groupNames []string
	for name := range groupMap {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	groups := make([]Group, 0, len(groupNames))
	for _, name := range groupNames {
		scenes := groupMap[name]
		sort.Slice(scenes, func(i, j int) bool {
			return scenes[i].DisplayName < scenes[j].DisplayName
		})
		groups = append(groups, Group{Name: name, Scenes: scenes})
	}
	return groups
}

// titleCase converts an identifier to title case
// e.g., "box-hole" -> "Box Hole"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
