package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func sparseFile(t *testing.T, dir, name string, size int64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		t.Fatalf("truncate %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", name, err)
	}
	return path
}

func admissionKind(t *testing.T, err error) AdmissionKind {
	t.Helper()
	var admissionErr *AdmissionError
	if !errors.As(err, &admissionErr) {
		t.Fatalf("expected *AdmissionError, got %T (%v)", err, err)
	}
	return admissionErr.Kind
}

func TestAdmitAcceptsPlainSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.rs", []byte("fn main() {}\n"))

	got, err := Admit(path)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if got.Content != "fn main() {}\n" {
		t.Fatalf("content = %q", got.Content)
	}
	if got.Language != "rust" {
		t.Fatalf("language = %q, want rust", got.Language)
	}
	if got.Size != int64(len("fn main() {}\n")) {
		t.Fatalf("size = %d", got.Size)
	}
	if got.ModTime.IsZero() {
		t.Fatalf("expected modification time to be captured")
	}
}

func TestAdmitChecksTypeBeforeSize(t *testing.T) {
	dir := t.TempDir()
	path := sparseFile(t, dir, "huge.bin", 15*1024*1024)

	_, err := Admit(path)
	if !errors.Is(err, ErrUnrecognizedType) {
		t.Fatalf("expected ErrUnrecognizedType, got %v", err)
	}
	var admissionErr *AdmissionError
	if errors.As(err, &admissionErr) && admissionErr.Extension != "bin" {
		t.Fatalf("extension = %q, want bin", admissionErr.Extension)
	}
}

func TestAdmitRejectsOversizedSource(t *testing.T) {
	dir := t.TempDir()
	path := sparseFile(t, dir, "big.rs", 15*1024*1024)

	_, err := Admit(path)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	var admissionErr *AdmissionError
	if !errors.As(err, &admissionErr) {
		t.Fatalf("expected *AdmissionError, got %T", err)
	}
	if admissionErr.Size != 15728640 || admissionErr.Max != 10485760 {
		t.Fatalf("got size=%d max=%d", admissionErr.Size, admissionErr.Max)
	}
}

func TestAdmitRejectsBinaryContent(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data []byte
		want AdmissionKind
	}{
		{name: "nul.txt", data: []byte{0x00}, want: KindBinary},
		{name: "nul-inside.go", data: []byte("package x\x00\n"), want: KindBinary},
		{name: "control.txt", data: append([]byte(strings.Repeat("a", 94)), 1, 1, 1, 1, 1, 1), want: KindBinary},
		{name: "mostly-garbage.txt", data: []byte("ab\xff"), want: KindEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.data)
			_, err := Admit(path)
			if err == nil {
				t.Fatalf("expected rejection")
			}
			if got := admissionKind(t, err); got != tt.want {
				t.Fatalf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdmitControlByteThresholdIsExclusive(t *testing.T) {
	dir := t.TempDir()
	data := append([]byte(strings.Repeat("a", 95)), 1, 1, 1, 1, 1)
	path := writeFile(t, dir, "edge.txt", data)

	if _, err := Admit(path); err != nil {
		t.Fatalf("5 control bytes in 100 should be admitted: %v", err)
	}
}

func TestAdmitIgnoresWhitespaceControls(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tabs.txt", []byte("\t\t\r\n\r\n\t\n"))

	if _, err := Admit(path); err != nil {
		t.Fatalf("whitespace controls should not count as binary: %v", err)
	}
}

func TestAdmitToleratesFewInvalidBytes(t *testing.T) {
	dir := t.TempDir()
	data := append([]byte(strings.Repeat("a", 3000)), 0xFF)
	path := writeFile(t, dir, "legacy.txt", data)

	got, err := Admit(path)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if !utf8.ValidString(got.Content) {
		t.Fatalf("content is not valid UTF-8")
	}
	if !strings.HasSuffix(got.Content, "�") {
		t.Fatalf("expected trailing replacement character")
	}
	if got.Size != int64(len(data)) {
		t.Fatalf("size = %d, want raw length %d", got.Size, len(data))
	}
}

func TestAdmitRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg.go")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Admit(sub)
	if !errors.Is(err, ErrNotAFile) {
		t.Fatalf("expected ErrNotAFile, got %v", err)
	}
}

func TestAdmitWrapsMissingFile(t *testing.T) {
	_, err := Admit(filepath.Join(t.TempDir(), "gone.go"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	var admissionErr *AdmissionError
	if errors.As(err, &admissionErr) {
		t.Fatalf("missing file should not be a policy rejection")
	}
}

func TestAdmitEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.md", nil)

	got, err := Admit(path)
	if err != nil {
		t.Fatalf("empty file should be admitted: %v", err)
	}
	if got.Content != "" || got.Language != "markdown" {
		t.Fatalf("got %+v", got)
	}
}
