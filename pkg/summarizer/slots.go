package summarizer

import (
	"strconv"

	"github.com/user/memecli/pkg/meme"
)

// SlotsFromReports flattens render reports depth-first, numbering slots from 1.
func SlotsFromReports(reports []meme.SlotReport) []SlotInfo {
	var out []SlotInfo
	var walk func(rs []meme.SlotReport, prefix string)
	walk = func(rs []meme.SlotReport, prefix string) {
		for _, r := range rs {
			path := prefix + strconv.Itoa(r.Slot+1)
			out = append(out, SlotInfo{
				Path:     path,
				Kind:     r.Kind,
				Text:     r.Text,
				Template: r.Template,
				FontSize: r.FontSize,
				Lines:    r.Lines,
				Overflow: r.Overflow,
			})
			walk(r.Nested, path+".")
		}
	}
	walk(reports, "")
	return out
}
