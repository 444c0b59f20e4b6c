package cards

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// SnapshotVersion is the current snapshot format version
const SnapshotVersion = 1

// Snapshot is a point-in-time export of the arena for inspection
type Snapshot struct {
	Version      int          `json:"version"`
	Active       GroupID      `json:"active"`
	ActiveWindow WindowID     `json:"activeWindow"`
	Order        []GroupID    `json:"order"`
	Groups       []CardGroup  `json:"groups"`
	Windows      []CardWindow `json:"windows"`
	Taken        time.Time    `json:"taken"`
}

// Snapshot copies the arena state. Groups follow deck order and windows
// are sorted by id.
func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Version:      SnapshotVersion,
		Active:       a.active,
		ActiveWindow: a.ActiveWindow(),
		Order:        a.Order(),
		Taken:        time.Now(),
	}
	for _, gid := range a.order {
		g := *a.groups[gid]
		g.Windows = append([]WindowID(nil), g.Windows...)
		s.Groups = append(s.Groups, g)
	}
	for _, w := range a.windows {
		s.Windows = append(s.Windows, *w)
	}
	sort.Slice(s.Windows, func(i, j int) bool {
		return s.Windows[i].ID < s.Windows[j].ID
	})
	return s
}

// Write encodes the snapshot as indented JSON
func (s Snapshot) Write(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// SaveTo writes the snapshot to path atomically
func (s Snapshot) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}
	return nil
}
