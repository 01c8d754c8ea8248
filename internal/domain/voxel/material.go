package voxel

import "strings"

// Material names a voxel type. Two materials are the same when their names
// are equal ignoring case, so "DIAMOND_ORE" and "diamond_ore" match.
type Material string

const Air Material = "air"

func (m Material) Is(other Material) bool {
	if m.Empty() || other.Empty() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(string(m)), strings.TrimSpace(string(other)))
}

func (m Material) Empty() bool {
	return strings.TrimSpace(string(m)) == ""
}

// Normalize lowercases and trims a material name for storage and palette keys.
func (m Material) Normalize() Material {
	return Material(strings.ToLower(strings.TrimSpace(string(m))))
}
