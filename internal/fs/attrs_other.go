//go:build !windows

package fs

// isHidden follows the dotfile convention.
func isHidden(_, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// excludedFromListing has nothing to exclude outside Windows.
func excludedFromListing(_, _ string) bool {
	return false
}
