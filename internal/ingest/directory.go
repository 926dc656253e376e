package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// DirStats summarizes one directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// ScanDirectory walks root and returns the statement files under it, sorted.
// includeExts overrides the default extension set. Unreadable entries are
// counted as failures and the walk continues.
func ScanDirectory(root string, includeExts []string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := extensionSet(includeExts)
	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			stats.Skipped++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !exts.allows(path) {
			stats.Skipped++
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, fmt.Errorf("walk: %w", err)
	}

	sort.Strings(paths)
	return paths, stats, nil
}

// LoadDocument reads a statement from disk, refusing files over maxMB
// before reading them.
func LoadDocument(path string, maxMB int) (entity.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return entity.Document{}, common.InvalidInputError(fmt.Sprintf("%s is a directory", path))
	}
	if maxMB > 0 && info.Size() > int64(maxMB)*1024*1024 {
		return entity.Document{}, common.InvalidInputError(fmt.Sprintf("File size must be less than %dMB", maxMB))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return entity.Document{FileName: filepath.Base(path), Data: data}, nil
}
