// Package cli wires the rctx command line: argument handling, configuration,
// the non-interactive tree mode and the interactive browser.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apppkg "github.com/kk-code-lab/rctx/internal/app"
	"github.com/kk-code-lab/rctx/internal/config"
	"github.com/kk-code-lab/rctx/internal/export"
	fsutil "github.com/kk-code-lab/rctx/internal/fs"
	"github.com/kk-code-lab/rctx/internal/logging"
	"github.com/kk-code-lab/rctx/internal/pathname"
	"github.com/kk-code-lab/rctx/internal/vcs"
)

// Version is injected at build time via -ldflags
var Version = "dev"


// ErrNotTerminal is returned when the browser is started without a TTY.
var ErrNotTerminal = errors.New("interactive mode requires a terminal on stdin and stdout (use --tree for plain output)")

var (
	isTerminal     = stdioIsTerminal
	runInteractive = runBrowser
)

type rootOptions struct {
	tree       bool
	depth      int
	hidden     bool
	all        bool
	configPath string
	logFile    string
	logLevel   string
}

// session is everything resolved before either mode starts.
type session struct {
	target     string
	repoRoot   string
	classifier fsutil.Classifier
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRootCommand creates and returns the root cobra command for rctx
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rctx [path]",
		Short: "Collect source files into Markdown context for LLMs",
		Long: `rctx is a terminal file browser for building LLM context.

Walk a directory, add text files to a collection, and export the
collection (or a directory tree) as one Markdown document, either to a
file or to the clipboard. Collected files can be refreshed from disk
at any time.

With --tree, rctx prints the directory tree and exits.`,
		Args:    cobra.MaximumNArgs(1),
		Version: Version,
		// Silence usage on errors to avoid duplicate help text; main prints errors.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.tree, "tree", "t", false, "print the directory tree and exit")
	flags.IntVarP(&opts.depth, "depth", "d", config.DefaultTreeDepth, "maximum tree depth (negative = unlimited)")
	flags.BoolVar(&opts.hidden, "hidden", false, "show hidden files")
	flags.BoolVar(&opts.all, "all", false, "show files ignored by .gitignore")
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rctx/config.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	rawPath := ""
	if len(args) > 0 {
		rawPath = args[0]
	}
	target, err := ResolveTargetDir(rawPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	sess := &session{target: target, cfg: cfg, logger: logger}
	if root, ok := vcs.Discover(target); ok {
		sess.repoRoot = root
		sess.classifier = vcs.NewClassifier(root)
	}
	logger.Debug("session resolved",
		zap.String("path", target),
		zap.String("repo", sess.repoRoot),
		zap.Bool("tree", opts.tree),
	)

	if opts.tree {
		return writeTree(cmd.OutOrStdout(), sess)
	}
	if !isTerminal() {
		return ErrNotTerminal
	}
	return runInteractive(sess)
}

// loadConfig reads the config file and overlays only the flags the user set.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	var showHidden, showIgnored *bool
	var treeDepth *int
	var logLevel, logFile *string
	flags := cmd.Flags()
	if flags.Changed("hidden") {
		showHidden = &opts.hidden
	}
	if flags.Changed("all") {
		showIgnored = &opts.all
	}
	if flags.Changed("depth") {
		treeDepth = &opts.depth
	}
	if flags.Changed("log-level") {
		logLevel = &opts.logLevel
	}
	if flags.Changed("log-file") {
		logFile = &opts.logFile
	}
	cfg.MergeWithFlags(showHidden, showIgnored, treeDepth, logLevel, logFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ResolveTargetDir turns the optional path argument into an absolute,
// symlink-free directory. Surrounding quotes and blanks are dropped so paths
// pasted from a file manager work. An empty argument means the working
// directory.
func ResolveTargetDir(raw string) (string, error) {
	cleaned := strings.TrimSpace(strings.Trim(raw, `"`))
	if cleaned == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine current directory: %w", err)
		}
		cleaned = cwd
	}

	info, err := os.Stat(cleaned)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("directory not found: %s", raw)
		}
		return "", fmt.Errorf("cannot access %s: %w", raw, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", raw)
	}

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalize path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalize path: %w", err)
	}
	return resolved, nil
}

func writeTree(out io.Writer, sess *session) error {
	policy := fsutil.Visibility{
		ShowHidden:  sess.cfg.ShowHidden,
		ShowIgnored: sess.cfg.ShowIgnored,
		Classifier:  sess.classifier,
	}
	namer := pathname.Namer{RepoRoot: sess.repoRoot, StartDir: sess.target}
	label := namer.DisplayPath(sess.target, sess.target)

	tree, err := export.RenderTree(sess.target, label, sess.cfg.TreeDepth, policy)
	if err != nil {
		return fmt.Errorf("failed to generate tree: %w", err)
	}
	sess.logger.Info("printed tree", zap.String("path", sess.target), zap.Int("bytes", len(tree)))

	_, err = io.WriteString(out, tree)
	return err
}

func runBrowser(sess *session) error {
	// Set UTF-8 as fallback encoding so non-ASCII names render on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(apppkg.Options{
		StartDir:   sess.target,
		RepoRoot:   sess.repoRoot,
		Classifier: sess.classifier,
		Config:     sess.cfg,
		Logger:     sess.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}

func stdioIsTerminal() bool {
	return isTTY(os.Stdin.Fd()) && isTTY(os.Stdout.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
