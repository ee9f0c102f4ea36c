package fs

import "testing"

func TestLanguageForResolvesFilenamesAndExtensions(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/main.rs", "rust", true},
		{"lib/App.TSX", "typescript", true},
		{"Makefile", "makefile", true},
		{"build/CMakeLists.txt", "cmake", true},
		{"go.mod", "go", true},
		{"Dockerfile", "dockerfile", true},
		{".gitignore", "plaintext", true},
		{"LICENSE", "plaintext", true},
		{"notes.TXT", "plaintext", true},
		{"styles.sass", "scss", true},
		{"header.h", "cpp", true},
		{"image.png", "", false},
		{".bashrc", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		got, ok := LanguageFor(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LanguageFor(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a/b/file.go":    "go",
		"archive.tar.GZ": "GZ",
		".bashrc":        "",
		"README":         "",
		"trailing.":      "",
	}
	for in, want := range tests {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLanguageTableIsIndependent(t *testing.T) {
	a := NewLanguageTable()
	b := NewLanguageTable()
	if a.Len() != b.Len() || a.Len() == 0 {
		t.Fatalf("tables differ: %d vs %d", a.Len(), b.Len())
	}
	a.tags["png"] = "image"
	if _, ok := b.Lookup("x.png"); ok {
		t.Fatalf("mutating one table leaked into another")
	}
}
