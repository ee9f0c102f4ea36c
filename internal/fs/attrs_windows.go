//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

// isHidden reports dotfiles and entries carrying the hidden attribute.
func isHidden(fullPath, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	attrs, err := fileAttributes(fullPath, name)
	return err == nil && attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// excludedFromListing drops compatibility junctions such as
// "Application Data", which carry both the system and reparse-point bits.
// They stay out even when hidden files are shown.
func excludedFromListing(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const junction = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&junction == junction
}

// fileAttributes reads the attribute mask of fullPath. The bare name is
// tried only when the full path does not exist.
func fileAttributes(fullPath, name string) (uint32, error) {
	targets := make([]string, 0, 2)
	if fullPath != "" {
		targets = append(targets, fullPath)
	}
	if name != "" && name != fullPath {
		targets = append(targets, name)
	}
	if len(targets) == 0 {
		return 0, os.ErrInvalid
	}

	var lastErr error
	for i, target := range targets {
		ptr, err := windows.UTF16PtrFromString(target)
		if err != nil {
			return 0, err
		}
		attrs, err := windows.GetFileAttributes(ptr)
		if err == nil {
			return attrs, nil
		}
		lastErr = err
		if i == 0 && !os.IsNotExist(err) {
			break
		}
	}
	return 0, lastErr
}
