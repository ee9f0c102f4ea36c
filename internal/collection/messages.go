package collection

import (
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/dustin/go-humanize"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

const (
	// LargeThreshold and VeryLargeThreshold are collection sizes, in bytes,
	// above which exports get unwieldy.
	LargeThreshold     int64 = 25 * 1024 * 1024
	VeryLargeThreshold int64 = 50 * 1024 * 1024
)

// ErrIndexOutOfRange means a caller addressed a snapshot that does not exist.
var ErrIndexOutOfRange = errors.New("snapshot index out of range")

// SizeWarning grades the total size of a collection.
type SizeWarning int

const (
	WarningNone SizeWarning = iota
	WarningLarge
	WarningVeryLarge
)

// SizeWarningFor grades total.
func SizeWarningFor(total int64) SizeWarning {
	switch {
	case total > VeryLargeThreshold:
		return WarningVeryLarge
	case total > LargeThreshold:
		return WarningLarge
	default:
		return WarningNone
	}
}

// Message renders the warning for a collection of total bytes; it is empty
// for WarningNone.
func (w SizeWarning) Message(total int64) string {
	switch w {
	case WarningVeryLarge:
		return fmt.Sprintf("⚠️ Collection is very large (%s) - Consider removing some files", FormatSize(total))
	case WarningLarge:
		return fmt.Sprintf("⚠️ Collection is getting large (%s)", FormatSize(total))
	default:
		return ""
	}
}

// FormatSize renders a byte count for status messages.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Describe turns a collection error into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var admissionErr *fsutil.AdmissionError
	if errors.As(err, &admissionErr) {
		switch admissionErr.Kind {
		case fsutil.KindUnrecognizedType:
			if admissionErr.Extension == "" {
				return "File has no extension - cannot determine type"
			}
			return "Unsupported file type: ." + admissionErr.Extension
		case fsutil.KindTooLarge:
			return fmt.Sprintf("File too large: %s (max: %s)", FormatSize(admissionErr.Size), FormatSize(admissionErr.Max))
		case fsutil.KindBinary:
			return "Cannot collect binary files - only text files are supported"
		case fsutil.KindEncoding:
			return "File has encoding issues - too many invalid UTF-8 characters"
		case fsutil.KindNotAFile:
			return "Cannot collect directories"
		}
	}

	switch {
	case errors.Is(err, ErrIndexOutOfRange):
		return "Internal error: " + err.Error()
	case errors.Is(err, iofs.ErrPermission):
		return "Permission denied: " + pathOf(err)
	case errors.Is(err, iofs.ErrNotExist):
		return "File no longer exists: " + pathOf(err)
	default:
		return "Failed to read file: " + err.Error()
	}
}

func pathOf(err error) string {
	var pathErr *iofs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return err.Error()
}
