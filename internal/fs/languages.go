package fs

import (
	"path/filepath"
	"strings"
)

// languageGroups maps a Markdown fence tag to the lowercase extensions and
// full filenames it covers. Full filenames and extensions share one key space
// because lookups always try the filename first.
var languageGroups = []struct {
	tag  string
	keys []string
}{
	// programming languages
	{"rust", []string{"rs"}},
	{"python", []string{"py", "pyw", "pyi"}},
	{"javascript", []string{"js", "mjs", "cjs"}},
	{"typescript", []string{"ts", "tsx"}},
	{"jsx", []string{"jsx"}},
	{"java", []string{"java"}},
	{"cpp", []string{"cpp", "c++", "cxx", "cc", "hpp", "h++", "hxx", "h"}},
	{"c", []string{"c"}},
	{"csharp", []string{"cs", "csx"}},
	{"go", []string{"go"}},
	{"swift", []string{"swift"}},
	{"kotlin", []string{"kt", "kts"}},
	{"scala", []string{"scala", "sc"}},
	{"ruby", []string{"rb", "rbw", "rake", "gemspec"}},
	{"php", []string{"php", "php3", "php4", "php5", "phtml"}},
	{"perl", []string{"pl", "pm", "pod"}},
	{"lua", []string{"lua"}},
	{"r", []string{"r", "rmd"}},
	{"julia", []string{"jl"}},
	{"dart", []string{"dart"}},
	{"haskell", []string{"hs", "lhs"}},
	{"clojure", []string{"clj", "cljs", "cljc", "edn"}},
	{"elixir", []string{"ex", "exs"}},
	{"erlang", []string{"erl", "hrl"}},
	{"ocaml", []string{"ml", "mli"}},
	{"fsharp", []string{"fs", "fsx", "fsi"}},
	{"nim", []string{"nim", "nims"}},
	{"zig", []string{"zig"}},
	{"crystal", []string{"cr"}},
	{"v", []string{"v"}},
	{"solidity", []string{"sol"}},

	// web
	{"html", []string{"html", "htm", "xhtml"}},
	{"css", []string{"css"}},
	{"scss", []string{"scss", "sass"}},
	{"less", []string{"less"}},
	{"vue", []string{"vue"}},
	{"svelte", []string{"svelte"}},
	{"astro", []string{"astro"}},

	// shells and scripts
	{"bash", []string{"sh", "bash", "zsh", "fish", "ksh", "csh"}},
	{"powershell", []string{"ps1", "psm1", "psd1"}},
	{"batch", []string{"bat", "cmd"}},

	// config and data
	{"json", []string{"json", "jsonc", "json5"}},
	{"yaml", []string{"yaml", "yml"}},
	{"toml", []string{"toml"}},
	{"xml", []string{"xml", "xsd", "xsl", "xslt", "svg"}},
	{"ini", []string{"ini", "cfg", "conf", "config"}},
	{"kdl", []string{"kdl"}},
	{"properties", []string{"properties", "props"}},
	{"graphql", []string{"graphql", "gql"}},
	{"protobuf", []string{"proto"}},

	// docs
	{"markdown", []string{"md", "markdown", "mdown", "mdx"}},
	{"restructuredtext", []string{"rst", "rest"}},
	{"asciidoc", []string{"adoc", "asciidoc", "asc"}},
	{"latex", []string{"tex", "latex", "ltx"}},
	{"org", []string{"org"}},

	// build and infra
	{"gradle", []string{"gradle", "gradle.kts"}},
	{"maven", []string{"pom"}},
	{"terraform", []string{"tf", "tfvars"}},
	{"hcl", []string{"hcl"}},
	{"sql", []string{"sql", "psql", "mysql"}},
	{"diff", []string{"diff", "patch"}},
	{"plaintext", []string{"txt", "text", "log", "logs", "out", "csv", "tsv", "lock"}},

	// full filenames
	{"makefile", []string{"makefile", "mk", "mak"}},
	{"cmake", []string{"cmakelists.txt", "cmake"}},
	{"dockerfile", []string{"dockerfile", "containerfile"}},
	{"go", []string{"go.mod", "go.sum"}},
	{"plaintext", []string{
		"license", "licence", "readme", "changelog", "authors",
		"contributors", "todo", "notes",
		".gitignore", ".gitattributes", ".gitmodules", ".gitkeep",
		".dockerignore", ".npmignore", ".eslintignore",
		".env", ".env.example", ".env.sample",
		".editorconfig", ".prettierrc", ".eslintrc", ".babelrc",
		".nvmrc", ".rvmrc", "ruby-version", "node-version",
	}},
}

// LanguageTable resolves fence tags for filenames. It is immutable after
// construction and safe for concurrent readers.
type LanguageTable struct {
	tags map[string]string
}

// NewLanguageTable builds the allow-list of collectable file types.
func NewLanguageTable() *LanguageTable {
	tags := make(map[string]string, 192)
	for _, group := range languageGroups {
		for _, key := range group.keys {
			tags[key] = group.tag
		}
	}
	return &LanguageTable{tags: tags}
}

var defaultLanguages = NewLanguageTable()

// Lookup returns the fence tag for path, trying the full lowercase filename
// first and the lowercase extension second.
func (t *LanguageTable) Lookup(path string) (string, bool) {
	name := strings.ToLower(filepath.Base(path))
	if tag, ok := t.tags[name]; ok {
		return tag, true
	}
	ext := Extension(name)
	if ext == "" {
		return "", false
	}
	tag, ok := t.tags[strings.ToLower(ext)]
	return tag, ok
}

// Len reports how many filenames and extensions are recognised.
func (t *LanguageTable) Len() int {
	return len(t.tags)
}

// LanguageFor resolves path against the built-in allow-list.
func LanguageFor(path string) (string, bool) {
	return defaultLanguages.Lookup(path)
}

// Extension returns the text after the final dot of the base name, without
// the dot. Dotfiles such as ".bashrc" have no extension.
func Extension(path string) string {
	name := filepath.Base(path)
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}
