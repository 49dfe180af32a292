package formatter

import (
	"strings"

	"github.com/alexanderramin/brandvoice/internal/service"
)

// FormatPromptList renders the prompt catalog with override status.
func FormatPromptList(views []service.PromptView) string {
	if len(views) == 0 {
		return Dim("No prompts.") + "\n"
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		status := Dim("default")
		if v.Overridden {
			status = StyleYellow.Render("override")
		}
		rows = append(rows, []string{v.Name, status, Truncate(v.Description, 48)})
	}
	return RenderTable([]string{"NAME", "STATUS", "DESCRIPTION"}, rows)
}

// FormatPromptShow renders one prompt with its fields and effective text.
func FormatPromptShow(v *service.PromptView) string {
	var b strings.Builder
	if v.Description != "" {
		b.WriteString(Dim(v.Description) + "\n\n")
	}
	if len(v.Fields) > 0 {
		names := make([]string, 0, len(v.Fields))
		for _, f := range v.Fields {
			n := "{" + f.Name + "}"
			if f.Required {
				n += "*"
			}
			names = append(names, n)
		}
		b.WriteString(Bold("Fields") + "  " + strings.Join(names, " ") + "\n\n")
	}
	if v.Overridden {
		meta := "override"
		if v.UpdatedBy != "" {
			meta += " by " + v.UpdatedBy
		}
		if !v.UpdatedAt.IsZero() {
			meta += " at " + v.UpdatedAt.Format("2006-01-02 15:04")
		}
		b.WriteString(StyleYellow.Render(meta) + "\n\n")
	}
	b.WriteString(Bold("System") + "\n" + strings.TrimSpace(v.System) + "\n\n")
	b.WriteString(Bold("User") + "\n" + strings.TrimSpace(v.Text))
	return RenderBox(v.Name, b.String())
}
