// Package libdiff computes structural differences between two param trees.
//
// A diff is a flat list of [Change] values, each addressed by a path such as
// $.fighter_param[3].name. Inserted, deleted and replaced nodes carry their
// values; changed strings carry a diff-match-patch patch instead of just the
// new text. [Render] writes a diff as YAML.
package libdiff
