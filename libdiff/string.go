package libdiff

import (
	"strings"

	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString returns an edit change carrying a patch from one string to the
// other, or nil if they are equal.
func DiffString(path string, from, to *ir.Node, labels *hash40.Labels) *Change {
	fs, _ := from.AsString()
	ts, _ := to.AsString()
	if fs == ts {
		return nil
	}
	res := makeChange(path, from, to, labels)
	res.Kind = EditKind
	res.Patch = stringPatch(fs, ts)
	return &res
}

func stringPatch(from, to string) string {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	return diffCfg.PatchToText(diffCfg.PatchMake(from, diffs))
}

// ApplyPatch applies the patch of an edit change to s.
func ApplyPatch(s, patch string) (string, bool) {
	diffCfg := diffpatch.New()
	patches, err := diffCfg.PatchFromText(patch)
	if err != nil {
		return "", false
	}
	res, applied := diffCfg.PatchApply(patches, s)
	for _, ok := range applied {
		if !ok {
			return "", false
		}
	}
	return res, true
}
