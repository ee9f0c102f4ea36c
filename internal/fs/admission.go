package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxAdmitSize is the largest file, in bytes, that may enter a collection.
	MaxAdmitSize int64 = 10 * 1024 * 1024

	// A file is binary when more than 1/controlByteDivisor of its bytes are
	// control bytes other than tab, newline and carriage return.
	controlByteDivisor = 20

	// Lossy UTF-8 is accepted while substitutions stay under
	// 1/replacementDivisor of the decoded length.
	replacementDivisor = 1000
)

// AdmissionKind enumerates the policy reasons a file is refused.
type AdmissionKind int

const (
	KindUnrecognizedType AdmissionKind = iota
	KindTooLarge
	KindBinary
	KindEncoding
	KindNotAFile
)

var (
	ErrUnrecognizedType = errors.New("unrecognized file type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrBinaryFile       = errors.New("binary file")
	ErrEncoding         = errors.New("invalid text encoding")
	ErrNotAFile         = errors.New("not a regular file")
)

func (k AdmissionKind) sentinel() error {
	switch k {
	case KindUnrecognizedType:
		return ErrUnrecognizedType
	case KindTooLarge:
		return ErrFileTooLarge
	case KindBinary:
		return ErrBinaryFile
	case KindEncoding:
		return ErrEncoding
	case KindNotAFile:
		return ErrNotAFile
	default:
		return nil
	}
}

func (k AdmissionKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("AdmissionKind(%d)", int(k))
}

// AdmissionError is a policy rejection. Filesystem failures are returned as
// ordinary wrapped errors instead.
type AdmissionError struct {
	Kind      AdmissionKind
	Path      string
	Extension string
	Size      int64
	Max       int64
}

func (e *AdmissionError) Error() string {
	switch e.Kind {
	case KindUnrecognizedType:
		if e.Extension == "" {
			return fmt.Sprintf("%s: %v (no extension)", e.Path, ErrUnrecognizedType)
		}
		return fmt.Sprintf("%s: %v .%s", e.Path, ErrUnrecognizedType, e.Extension)
	case KindTooLarge:
		return fmt.Sprintf("%s: %v (%d > %d bytes)", e.Path, ErrFileTooLarge, e.Size, e.Max)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
}

// Is lets errors.Is match an AdmissionError against the Err* sentinels.
func (e *AdmissionError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Admitted is file content that passed every admission check.
type Admitted struct {
	Content  string
	Language string
	Size     int64
	ModTime  time.Time
}

// Admit decides whether path may be collected as text and returns its
// content. The type allow-list is consulted before any file I/O.
func Admit(path string) (Admitted, error) {
	language, ok := LanguageFor(path)
	if !ok {
		return Admitted{}, &AdmissionError{Kind: KindUnrecognizedType, Path: path, Extension: strings.ToLower(Extension(path))}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Admitted{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Admitted{}, &AdmissionError{Kind: KindNotAFile, Path: path}
	}
	if info.Size() > MaxAdmitSize {
		return Admitted{}, &AdmissionError{Kind: KindTooLarge, Path: path, Size: info.Size(), Max: MaxAdmitSize}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Admitted{}, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(raw)) > MaxAdmitSize {
		return Admitted{}, &AdmissionError{Kind: KindTooLarge, Path: path, Size: int64(len(raw)), Max: MaxAdmitSize}
	}

	content, err := decodeText(raw)
	if err != nil {
		var admissionErr *AdmissionError
		if errors.As(err, &admissionErr) {
			admissionErr.Path = path
		}
		return Admitted{}, err
	}

	return Admitted{
		Content:  content,
		Language: language,
		Size:     int64(len(raw)),
		ModTime:  info.ModTime(),
	}, nil
}

// decodeText applies the binary and encoding checks to raw file bytes.
func decodeText(raw []byte) (string, error) {
	if bytes.IndexByte(raw, 0x00) != -1 {
		return "", &AdmissionError{Kind: KindBinary}
	}
	if countControlBytes(raw) > len(raw)/controlByteDivisor {
		return "", &AdmissionError{Kind: KindBinary}
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	lossy, replaced := decodeLossy(raw)
	if replaced < len(lossy)/replacementDivisor {
		return lossy, nil
	}
	return "", &AdmissionError{Kind: KindEncoding}
}

func countControlBytes(raw []byte) int {
	count := 0
	for _, b := range raw {
		if (b < 0x20 || b == 0x7F) && b != '\t' && b != '\n' && b != '\r' {
			count++
		}
	}
	return count
}

// decodeLossy replaces every invalid byte with U+FFFD and reports how many
// replacement characters the result holds.
func decodeLossy(raw []byte) (string, int) {
	var builder strings.Builder
	builder.Grow(len(raw) + len(raw)/8)
	replaced := 0
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError {
			replaced++
		}
		builder.WriteRune(r)
		raw = raw[size:]
	}
	return builder.String(), replaced
}
