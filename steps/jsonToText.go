package steps

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/vladimir-rom/chartprops/colors"
	"github.com/vladimir-rom/chartprops/pipeline"
	"golang.org/x/text/width"
)

// JsonToText renders records as aligned columns. Rows are buffered until
// the input ends because column widths depend on every row.
func JsonToText(
	opts pipeline.PipelineOptions,
	fields []string,
	textDelim string,
	highlights []string,
	c *colors.Colorizer) pipeline.Step[JSON, string] {
	if len(fields) == 0 {
		fields = AllFields
	}

	type row struct {
		item  pipeline.Item[JSON]
		cells []string
	}
	highlighter := getHighlighter(highlights, c)

	return func(in pipeline.Seq[JSON]) pipeline.Seq[string] {
		return func(yield pipeline.Yield[string]) {
			var rows []row
			widths := make([]int, len(fields))

			render := pipeline.NewStepWithFin(
				opts,
				func(obj pipeline.Item[JSON], yield pipeline.Yield[string]) bool {
					cells := make([]string, len(fields))
					for i, f := range fields {
						if v, ok := obj.Value[f]; ok {
							cells[i] = fmt.Sprint(v)
						}
						widths[i] = max(widths[i], displayWidth(cells[i]))
					}
					rows = append(rows, row{obj, cells})
					return true
				},
				func(yield pipeline.Yield[string]) {
					for _, r := range rows {
						line := formatRow(r.cells, widths, fields, textDelim, highlighter, c)
						if len(line) == 0 {
							continue
						}
						if !yield(pipeline.ToItem(r.item, line), nil) {
							return
						}
					}
				},
			)

			render(in)(yield)
		}
	}
}

// formatRow pads every cell but the last one. Highlighting runs on the raw
// cell so it never touches color escape sequences.
func formatRow(
	cells []string,
	widths []int,
	fields []string,
	textDelim string,
	highlighter func(string) string,
	c *colors.Colorizer) string {
	res := strings.Builder{}
	for i, cell := range cells {
		if i > 0 {
			res.WriteString(textDelim)
		}
		if len(cell) > 0 {
			res.WriteString(c.ForField(fields[i])(highlighter(cell)))
		}
		if i < len(cells)-1 {
			res.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)))
		}
	}
	return strings.TrimRight(res.String(), " ")
}

// displayWidth counts terminal cells: East Asian wide and fullwidth runes
// take two.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

func getHighlighter(subs []string, c *colors.Colorizer) func(string) string {
	if !c.Enabled || len(subs) == 0 {
		return func(s string) string {
			return s
		}
	}

	escapedSubs := lo.Map(subs, func(ss string, _ int) string {
		return regexp.QuoteMeta(ss)
	})
	reg := regexp.MustCompile("(?i)" + strings.Join(escapedSubs, "|"))
	return func(s string) string {
		return reg.ReplaceAllStringFunc(s, c.Highlight)
	}
}
