package output

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"sqlalign/internal/core"
)

type tableFormatter struct{}

func (tableFormatter) FormatStats(s core.Stats) (string, error) {
	var sb strings.Builder
	table := newTable(&sb, []string{"Metric", "Value"})
	for _, row := range statsRows(s) {
		table.Append([]string{row.label, strconv.Itoa(row.value)})
	}
	table.Render()
	return sb.String(), nil
}

// FormatBatch renders one table row per file followed by the success count.
func (tableFormatter) FormatBatch(r *core.BatchReport) (string, error) {
	var sb strings.Builder
	table := newTable(&sb, []string{"File", "Lines", "Aligned As", "Checksum", "Error"})
	total := 0
	if r != nil {
		total = len(r.Files)
		for _, f := range r.Files {
			lines := ""
			if f.OK() {
				lines = strconv.Itoa(f.OriginalLines)
			}
			table.Append([]string{f.Name, lines, f.AlignedName, f.Checksum, f.Error})
		}
	}
	table.Render()
	sb.WriteString("Successfully processed " + strconv.Itoa(r.Succeeded()) +
		" out of " + strconv.Itoa(total) + " files.\n")
	return sb.String(), nil
}

// FormatTableInfo renders one row per column under a "Table:" title line.
func (tableFormatter) FormatTableInfo(t *core.TableInfo) (string, error) {
	if t == nil {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString(tableTitle(t))
	table := newTable(&sb, []string{"Column", "Type", "Nullable", "Comment"})
	for _, c := range t.Columns {
		table.Append([]string{c.Name, c.Type, strconv.FormatBool(c.Nullable), c.Comment})
	}
	table.Render()
	return sb.String(), nil
}

func newTable(sb *strings.Builder, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(sb)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}
