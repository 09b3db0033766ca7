package output

import (
	"fmt"
	"strings"

	"sqlalign/internal/core"
)

type textFormatter struct{}

// FormatStats formats statistics as aligned label/value lines.
// Example output:
//
//	Total Lines:     12
//	Effective Lines: 10
//	Comment Lines:   3
//	Fields:          7
func (textFormatter) FormatStats(s core.Stats) (string, error) {
	var sb strings.Builder
	for _, row := range statsRows(s) {
		fmt.Fprintf(&sb, "%-16s %d\n", row.label+":", row.value)
	}
	return sb.String(), nil
}

// FormatBatch formats a batch report as the plain-text summary that is
// saved next to the archive.
func (textFormatter) FormatBatch(r *core.BatchReport) (string, error) {
	return Summary(r), nil
}

// Summary renders the batch summary report.
// Example output:
//
//	--- Batch Processing Summary ---
//
//	File: users.sql
//	  - Original Lines: 14
//	  - Aligned File Name: aligned_users.sql
//	  - Checksum (xxh3): 9f2c0c4e1a77b1d3
//
//	File: broken.sql
//	  - Error processing file: batch: decode: invalid UTF-8
//
//	Successfully processed 1 out of 2 files.
func Summary(r *core.BatchReport) string {
	var sb strings.Builder
	sb.WriteString("--- Batch Processing Summary ---\n")
	if r == nil {
		sb.WriteString("\nSuccessfully processed 0 out of 0 files.\n")
		return sb.String()
	}

	for _, f := range r.Files {
		fmt.Fprintf(&sb, "\nFile: %s\n", f.Name)
		if !f.OK() {
			fmt.Fprintf(&sb, "  - Error processing file: %s\n", f.Error)
			continue
		}
		fmt.Fprintf(&sb, "  - Original Lines: %d\n", f.OriginalLines)
		fmt.Fprintf(&sb, "  - Aligned File Name: %s\n", f.AlignedName)
		if f.Checksum != "" {
			fmt.Fprintf(&sb, "  - Checksum (xxh3): %s\n", f.Checksum)
		}
	}

	fmt.Fprintf(&sb, "\nSuccessfully processed %d out of %d files.\n", r.Succeeded(), len(r.Files))
	return sb.String()
}

// FormatTableInfo lists the columns of an introspected table.
// Example output:
//
//	Table: system_post (Posts)
//	  - id bigint NOT NULL -- Post ID
//	  - name varchar(64)
func (textFormatter) FormatTableInfo(t *core.TableInfo) (string, error) {
	if t == nil {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString(tableTitle(t))
	for _, c := range t.Columns {
		fmt.Fprintf(&sb, "  - %s %s", c.Name, c.Type)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if c.Comment != "" {
			fmt.Fprintf(&sb, " -- %s", c.Comment)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func tableTitle(t *core.TableInfo) string {
	if t.Comment == "" {
		return fmt.Sprintf("Table: %s\n", t.Name)
	}
	return fmt.Sprintf("Table: %s (%s)\n", t.Name, t.Comment)
}

type statsRow struct {
	label string
	value int
}

func statsRows(s core.Stats) []statsRow {
	return []statsRow{
		{"Total Lines", s.TotalLines},
		{"Effective Lines", s.NonEmptyLines},
		{"Comment Lines", s.CommentLines},
		{"Fields", s.FieldMarkers},
	}
}
