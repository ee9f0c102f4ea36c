package collection

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unsupported", &fsutil.AdmissionError{Kind: fsutil.KindUnrecognizedType, Extension: "png"}, "Unsupported file type: .png"},
		{"no extension", &fsutil.AdmissionError{Kind: fsutil.KindUnrecognizedType}, "File has no extension - cannot determine type"},
		{"too large", &fsutil.AdmissionError{Kind: fsutil.KindTooLarge, Size: 15 << 20, Max: 10 << 20}, "File too large: 15 MiB (max: 10 MiB)"},
		{"binary", &fsutil.AdmissionError{Kind: fsutil.KindBinary}, "Cannot collect binary files - only text files are supported"},
		{"encoding", &fsutil.AdmissionError{Kind: fsutil.KindEncoding}, "File has encoding issues - too many invalid UTF-8 characters"},
		{"directory", &fsutil.AdmissionError{Kind: fsutil.KindNotAFile}, "Cannot collect directories"},
		{"permission", fmt.Errorf("read: %w", &iofs.PathError{Op: "open", Path: "/x/secret.go", Err: iofs.ErrPermission}), "Permission denied: /x/secret.go"},
		{"missing", &iofs.PathError{Op: "stat", Path: "/x/gone.go", Err: iofs.ErrNotExist}, "File no longer exists: /x/gone.go"},
		{"other", errors.New("disk on fire"), "Failed to read file: disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestSizeWarningFor(t *testing.T) {
	assert.Equal(t, WarningNone, SizeWarningFor(LargeThreshold))
	assert.Equal(t, WarningLarge, SizeWarningFor(LargeThreshold+1))
	assert.Equal(t, WarningLarge, SizeWarningFor(VeryLargeThreshold))
	assert.Equal(t, WarningVeryLarge, SizeWarningFor(VeryLargeThreshold+1))

	assert.Empty(t, WarningNone.Message(10))
	assert.Contains(t, WarningLarge.Message(LargeThreshold+1), "getting large")
	assert.Contains(t, WarningVeryLarge.Message(VeryLargeThreshold+1), "very large")
}

func TestRefreshMessage(t *testing.T) {
	text, ok := RefreshMessage(RefreshSummary{Unchanged: 4}, 4, 4)
	assert.True(t, ok)
	assert.Equal(t, "✓ Collection is up to date (4 files checked)", text)

	text, ok = RefreshMessage(RefreshSummary{}, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, "✓ Collection is up to date (0 files checked)", text)

	text, ok = RefreshMessage(RefreshSummary{Unchanged: 1, Updated: 2, Deleted: 1}, 4, 3)
	assert.True(t, ok)
	assert.Equal(t, "Refresh complete: 2 updated, 1 deleted | 4 → 3 files", text)

	text, ok = RefreshMessage(RefreshSummary{Inaccessible: 1, Failed: 1}, 2, 1)
	assert.False(t, ok)
	assert.Equal(t, "Refresh complete: 1 inaccessible, 1 failed | 2 → 1 files", text)
}

func TestAddAllMessageTip(t *testing.T) {
	s := AddAllSummary{Added: 3, OldSize: LargeThreshold - 10, NewSize: LargeThreshold + 10}
	s.Warning = SizeWarningFor(s.NewSize)

	msg := AddAllMessage(s, 7)
	assert.Contains(t, msg, "Added 3 files, updated 0, skipped 0 (errors: 0) - Total: 7 files")
	assert.Contains(t, msg, "getting large")
	assert.Contains(t, msg, "Tip: Use 'd'")
}

func TestAddMessage(t *testing.T) {
	r := AddResult{Snapshot: Snapshot{Content: "abc"}, NewCount: 2}
	assert.Equal(t, "Added a.go (3 B) - Total: 2 files", AddMessage("a.go", r))

	r.Replaced = true
	assert.Equal(t, "Updated a.go (3 B) - Total: 2 files", AddMessage("a.go", r))
}
