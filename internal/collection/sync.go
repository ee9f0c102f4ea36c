package collection

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"

	"go.uber.org/zap"
)

// Status is the filesystem state of a snapshot's source path.
type Status int

const (
	StatusUnchanged Status = iota
	StatusModified
	StatusDeleted
	StatusNotAFile
	StatusInaccessible
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusNotAFile:
		return "not a file"
	case StatusInaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// CheckStatus compares the source of snap against its captured state using
// only file metadata.
func CheckStatus(snap Snapshot) Status {
	info, err := os.Stat(snap.Path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return StatusDeleted
	case err != nil:
		return StatusInaccessible
	case !info.Mode().IsRegular():
		return StatusNotAFile
	case info.ModTime().IsZero():
		return StatusUnknown
	case info.ModTime().After(snap.ModTime):
		return StatusModified
	default:
		return StatusUnchanged
	}
}

// RefreshResult is the outcome of refreshing one snapshot.
type RefreshResult int

const (
	RefreshNoChange RefreshResult = iota
	RefreshUpdated
	RefreshDeleted
	RefreshInaccessible
	RefreshFailed
)

func (r RefreshResult) String() string {
	switch r {
	case RefreshNoChange:
		return "no change"
	case RefreshUpdated:
		return "updated"
	case RefreshDeleted:
		return "deleted"
	case RefreshInaccessible:
		return "inaccessible"
	default:
		return "failed"
	}
}

// RefreshOne re-synchronises the snapshot at position i. It never removes
// anything; RefreshAll does that for deleted and inaccessible sources.
//
// A modified source whose new content has the same fingerprint reports
// RefreshNoChange, and only its stored ModTime advances. After that the
// stored ModTime is the last time the file was seen, not the last time its
// content was captured.
func (c *Collector) RefreshOne(i int) (RefreshResult, error) {
	snap, ok := c.store.At(i)
	if !ok {
		return RefreshFailed, fmt.Errorf("refresh %d of %d: %w", i, c.store.Len(), ErrIndexOutOfRange)
	}

	switch status := CheckStatus(snap); status {
	case StatusUnchanged:
		return RefreshNoChange, nil
	case StatusDeleted:
		return RefreshDeleted, nil
	case StatusInaccessible:
		return RefreshInaccessible, nil
	case StatusModified:
		fresh, err := c.capture(snap.Path, snap.Label)
		if err != nil {
			c.logger.Debug("refresh capture failed", zap.String("path", snap.Path), zap.Error(err))
			return RefreshFailed, nil
		}
		if fresh.Fingerprint == snap.Fingerprint {
			c.store.setModTime(i, fresh.ModTime)
			return RefreshNoChange, nil
		}
		c.store.replaceAt(i, fresh)
		return RefreshUpdated, nil
	default:
		c.logger.Debug("refresh skipped", zap.String("path", snap.Path), zap.Stringer("status", status))
		return RefreshFailed, nil
	}
}

// RefreshSummary tallies a RefreshAll pass.
type RefreshSummary struct {
	Unchanged    int
	Updated      int
	Deleted      int
	Inaccessible int
	Failed       int
}

// Checked is the number of snapshots examined.
func (s RefreshSummary) Checked() int {
	return s.Unchanged + s.Updated + s.Deleted + s.Inaccessible + s.Failed
}

// UpToDate reports a pass where every snapshot was unchanged.
func (s RefreshSummary) UpToDate() bool {
	return s.Updated == 0 && s.Deleted == 0 && s.Inaccessible == 0 && s.Failed == 0
}

// HasProblems reports failures that the user may need to act on.
func (s RefreshSummary) HasProblems() bool {
	return s.Failed > 0 || s.Inaccessible > 0
}

// RefreshAll refreshes every snapshot, then drops those whose source was
// deleted or became inaccessible. Removals run from the highest position down
// so swap-removal never moves a snapshot that is still pending removal.
func (c *Collector) RefreshAll() RefreshSummary {
	var summary RefreshSummary
	var drop []int

	for i := 0; i < c.store.Len(); i++ {
		result, err := c.RefreshOne(i)
		if err != nil {
			c.logger.Error("refresh", zap.Error(err))
			summary.Failed++
			continue
		}
		switch result {
		case RefreshNoChange:
			summary.Unchanged++
		case RefreshUpdated:
			summary.Updated++
		case RefreshDeleted:
			summary.Deleted++
			drop = append(drop, i)
		case RefreshInaccessible:
			summary.Inaccessible++
			drop = append(drop, i)
		default:
			summary.Failed++
		}
	}

	for j := len(drop) - 1; j >= 0; j-- {
		removed := c.store.removeAt(drop[j])
		c.logger.Debug("dropped stale file", zap.String("path", removed.Path))
	}

	c.logger.Info("refreshed collection",
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("updated", summary.Updated),
		zap.Int("deleted", summary.Deleted),
		zap.Int("inaccessible", summary.Inaccessible),
		zap.Int("failed", summary.Failed),
	)
	return summary
}
