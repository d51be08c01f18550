package driver

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the Snapshot layout changes so stale exports are rejected
// instead of misread.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the serializable record of one check run: the declared
// surface of the script plus its diagnostics, keyed to the exact content
// that produced them.
type Snapshot struct {
	Schema      uint16
	Path        string
	ContentHash string // hex sha256 of the normalized source
	Aliases     map[string]string
	Bindings    map[string]string
	Diagnostics []SnapshotDiagnostic
}

// SnapshotDiagnostic is one rendered diagnostic with its resolved
// position.
type SnapshotDiagnostic struct {
	Code     string
	Severity uint8
	Line     uint32
	Col      uint32
	Message  string
}

// BuildSnapshot flattens a Result into its serializable form. Types are
// stored rendered: a snapshot is a report, not a live interner.
func BuildSnapshot(res *Result) *Snapshot {
	snap := &Snapshot{
		Schema:      snapshotSchemaVersion,
		Path:        res.File.Path,
		ContentHash: hex.EncodeToString(res.File.Hash[:]),
		Aliases:     make(map[string]string, len(res.Check.Aliases)),
		Bindings:    make(map[string]string, len(res.Check.Bindings)),
	}
	for name, id := range res.Check.Aliases {
		snap.Aliases[res.Names.MustLookup(name)] = res.FormatType(id)
	}
	for name, id := range res.Check.Bindings {
		snap.Bindings[res.Names.MustLookup(name)] = res.FormatType(id)
	}
	for _, d := range res.Bag.Items() {
		start, _ := res.FileSet.Resolve(d.Primary)
		snap.Diagnostics = append(snap.Diagnostics, SnapshotDiagnostic{
			Code:     d.Code.String(),
			Severity: uint8(d.Severity),
			Line:     start.Line,
			Col:      start.Col,
			Message:  d.Message,
		})
	}
	sort.SliceStable(snap.Diagnostics, func(i, j int) bool {
		if snap.Diagnostics[i].Line != snap.Diagnostics[j].Line {
			return snap.Diagnostics[i].Line < snap.Diagnostics[j].Line
		}
		return snap.Diagnostics[i].Col < snap.Diagnostics[j].Col
	})
	return snap
}

// WriteSnapshot serializes the snapshot to path via a temp file and
// rename, so readers never observe a half-written export.
func WriteSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadSnapshot loads a snapshot, rejecting exports written under a
// different schema.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot schema %d is not the supported %d", snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}
