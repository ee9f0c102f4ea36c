package collection

import (
	"fmt"
	"strings"
)

// AddMessage summarises a successful AddOrUpdate of the file called name.
func AddMessage(name string, r AddResult) string {
	verb := "Added"
	if r.Replaced {
		verb = "Updated"
	}
	msg := fmt.Sprintf("%s %s (%s) - Total: %d files", verb, name, FormatSize(int64(len(r.Snapshot.Content))), r.NewCount)
	if warning := r.Warning.Message(r.NewSize); warning != "" {
		msg += " | " + warning
	}
	return msg
}

// AddAllMessage summarises an AddAll call; total is the collection length
// afterwards.
func AddAllMessage(s AddAllSummary, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Added %d files, updated %d, skipped %d (errors: %d) - Total: %d files (%s)",
		s.Added, s.Updated, s.Skipped, s.Errors, total, FormatSize(s.NewSize))
	if warning := s.Warning.Message(s.NewSize); warning != "" {
		b.WriteString("\n")
		b.WriteString(warning)
		if s.CrossedLargeThreshold() {
			b.WriteString("\nTip: Use 'd' to remove individual files or 'D' to clear all")
		}
	}
	return b.String()
}

// RemoveMessage summarises dropping snap; remaining is the new length.
func RemoveMessage(name string, snap Snapshot, remaining int) string {
	return fmt.Sprintf("Removed %s (%s) - Total: %d files", name, FormatSize(int64(len(snap.Content))), remaining)
}

// RefreshMessage summarises a RefreshAll pass that took the collection from
// before to after snapshots. ok is false when the pass hit problems.
func RefreshMessage(s RefreshSummary, before, after int) (text string, ok bool) {
	if s.UpToDate() {
		return fmt.Sprintf("✓ Collection is up to date (%d files checked)", s.Checked()), true
	}

	var changes []string
	add := func(n int, what string) {
		if n > 0 {
			changes = append(changes, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(s.Updated, "updated")
	add(s.Deleted, "deleted")
	add(s.Inaccessible, "inaccessible")
	add(s.Failed, "failed")

	text = fmt.Sprintf("Refresh complete: %s | %d → %d files", strings.Join(changes, ", "), before, after)
	return text, !s.HasProblems()
}
