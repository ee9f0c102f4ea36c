package collection

import (
	"errors"
	"time"

	"go.uber.org/zap"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
	"github.com/kk-code-lab/rctx/internal/pathname"
)

// Collector owns a Store and runs every operation that reads files into it.
// It is driven from the UI loop and is not safe for concurrent use.
type Collector struct {
	store  *Store
	namer  pathname.Namer
	logger *zap.Logger
	now    func() time.Time
}

// NewCollector returns a collector with an empty store. A nil logger is
// replaced by a no-op logger.
func NewCollector(namer pathname.Namer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		store:  NewStore(),
		namer:  namer,
		logger: logger.Named("collection"),
		now:    time.Now,
	}
}

// Store exposes the snapshots for reading.
func (c *Collector) Store() *Store {
	return c.store
}

// Namer returns the labeler used for new snapshots.
func (c *Collector) Namer() pathname.Namer {
	return c.namer
}

// AddResult describes one AddOrUpdate call.
type AddResult struct {
	Snapshot Snapshot
	Replaced bool
	OldCount int
	NewCount int
	OldSize  int64
	NewSize  int64
	Warning  SizeWarning
}

// SizeDelta is the change in total collection size.
func (r AddResult) SizeDelta() int64 {
	return r.NewSize - r.OldSize
}

// AddOrUpdate captures entry and stores it, replacing any earlier snapshot of
// the same path. The label is computed relative to currentDir.
func (c *Collector) AddOrUpdate(entry fsutil.Entry, currentDir string) (AddResult, error) {
	if entry.IsDir {
		return AddResult{}, &fsutil.AdmissionError{Kind: fsutil.KindNotAFile, Path: entry.FullPath}
	}

	snap, err := c.capture(entry.FullPath, c.namer.Label(entry.FullPath, currentDir))
	if err != nil {
		c.logger.Debug("capture rejected", zap.String("path", entry.FullPath), zap.Error(err))
		return AddResult{}, err
	}

	result := AddResult{
		OldCount: c.store.Len(),
		OldSize:  c.store.TotalSize(),
	}
	_, result.Replaced = c.store.Put(snap)
	result.Snapshot = snap
	result.NewCount = c.store.Len()
	result.NewSize = c.store.TotalSize()
	result.Warning = SizeWarningFor(result.NewSize)

	c.logger.Debug("captured file",
		zap.String("path", snap.Path),
		zap.String("label", snap.Label),
		zap.Int("bytes", len(snap.Content)),
		zap.Bool("replaced", result.Replaced),
		zap.Int64("delta", result.SizeDelta()),
	)
	return result, nil
}

// AddAllSummary tallies an AddAll call.
type AddAllSummary struct {
	Added   int
	Updated int
	Skipped int // directories and files the admission policy refused
	Errors  int // filesystem failures
	OldSize int64
	NewSize int64
	Warning SizeWarning
}

// CrossedLargeThreshold reports whether this call pushed the collection over
// LargeThreshold.
func (s AddAllSummary) CrossedLargeThreshold() bool {
	return s.OldSize < LargeThreshold && s.NewSize >= LargeThreshold
}

// AddAll runs AddOrUpdate over every file in entries. One file's failure
// never stops the others.
func (c *Collector) AddAll(entries []fsutil.Entry, currentDir string) AddAllSummary {
	summary := AddAllSummary{OldSize: c.store.TotalSize()}
	for _, entry := range entries {
		if !entry.IsRegular() {
			summary.Skipped++
			continue
		}
		result, err := c.AddOrUpdate(entry, currentDir)
		var admissionErr *fsutil.AdmissionError
		switch {
		case errors.As(err, &admissionErr):
			summary.Skipped++
		case err != nil:
			summary.Errors++
		case result.Replaced:
			summary.Updated++
		default:
			summary.Added++
		}
	}
	summary.NewSize = c.store.TotalSize()
	summary.Warning = SizeWarningFor(summary.NewSize)

	c.logger.Info("collected directory",
		zap.String("dir", currentDir),
		zap.Int("added", summary.Added),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors),
	)
	return summary
}

// Remove drops the snapshot for path, if present.
func (c *Collector) Remove(path string) (Snapshot, bool) {
	snap, ok := c.store.Remove(path)
	if ok {
		c.logger.Debug("removed file", zap.String("path", path))
	}
	return snap, ok
}

// Clear empties the collection and reports how many snapshots were dropped.
func (c *Collector) Clear() int {
	n := c.store.Clear()
	if n > 0 {
		c.logger.Info("cleared collection", zap.Int("files", n))
	}
	return n
}

func (c *Collector) capture(path, label string) (Snapshot, error) {
	admitted, err := fsutil.Admit(path)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Path:        path,
		Label:       label,
		Content:     admitted.Content,
		Language:    admitted.Language,
		Fingerprint: Fingerprint(admitted.Content),
		Size:        admitted.Size,
		ModTime:     admitted.ModTime,
		CollectedAt: c.now(),
	}, nil
}
