package report

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a character diff from expected to actual in wdiff style:
// removed text as [-text-] and added text as {+text+}.
func Diff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
