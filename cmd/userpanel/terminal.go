package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/undiziwa/userpanel/internal/panel"
)

// terminalView renders the panel on a terminal. It implements
// panel.View, panel.NotificationSink and panel.Confirmer.
type terminalView struct {
	out io.Writer
	in  *bufio.Reader

	rows        []panel.Row
	page        int
	totalPages  int
	prevEnabled bool
	nextEnabled bool

	editOpen   bool
	editForm   panel.EditForm
	createOpen bool
}

func newTerminalView(out io.Writer, in io.Reader) *terminalView {
	return &terminalView{out: out, in: bufio.NewReader(in)}
}

func (v *terminalView) SetRows(rows []panel.Row) { v.rows = rows }

func (v *terminalView) SetPageIndicator(page, totalPages int) {
	v.page = page
	v.totalPages = totalPages
}

func (v *terminalView) SetNavEnabled(prev, next bool) {
	v.prevEnabled = prev
	v.nextEnabled = next
}

func (v *terminalView) ShowEditModal(form panel.EditForm) {
	v.editOpen = true
	v.editForm = form
	fmt.Fprintf(v.out, "\n-- manage %s (role=%s active=%s) --\n", form.Username, form.Role, form.IsActive)
}

func (v *terminalView) HideEditModal() { v.editOpen = false }

func (v *terminalView) ShowCreateModal() {
	v.createOpen = true
	fmt.Fprintln(v.out, "\n-- create user --")
}

func (v *terminalView) HideCreateModal() { v.createOpen = false }

func (v *terminalView) Display(n panel.Notification) {
	prefix := "ok"
	if n.IsError {
		prefix = "error"
	}
	fmt.Fprintf(v.out, "[%s] %s\n", prefix, n.Message)
}

// Clear is a no-op: a terminal cannot retract printed output.
func (v *terminalView) Clear() {}

func (v *terminalView) Confirm(prompt string) bool {
	answer := v.prompt(prompt + " [y/N]")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// paint redraws the current table state.
func (v *terminalView) paint() {
	w := tabwriter.NewWriter(v.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tSTATUS\t")
	for _, row := range v.rows {
		manage := ""
		if row.CanManage {
			manage = "[manage]"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.UserID, row.Username, row.Email, row.Role, row.StatusLabel, manage)
	}
	w.Flush()

	nav := []string{}
	if v.prevEnabled {
		nav = append(nav, "p:prev")
	}
	if v.nextEnabled {
		nav = append(nav, "n:next")
	}
	fmt.Fprintf(v.out, "page %d of %d  %s\n", v.page, v.totalPages, strings.Join(nav, " "))
}

func (v *terminalView) prompt(label string) string {
	fmt.Fprintf(v.out, "%s: ", label)
	line, err := v.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
