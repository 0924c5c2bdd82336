package reorg

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/gammazero/toposort"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// Cleaner removes directories left empty after moves or after a revert. It
// is a best-effort tidy-up: failures to remove are swallowed, never fatal.
type Cleaner struct {
	fsys   filesystem.FullFileSystem
	logger zerolog.Logger
}

// NewCleaner creates a cleaner over fsys.
func NewCleaner(fsys filesystem.FullFileSystem, logger zerolog.Logger) *Cleaner {
	return &Cleaner{fsys: fsys, logger: logger}
}

// RemoveEmpty removes every candidate directory that currently has zero
// entries, deepest-first, so that removing a leaf can make its parent newly
// eligible within the same pass. Returns the number of directories removed
// (or, in dry-run mode, that would be removed).
func (c *Cleaner) RemoveEmpty(candidates []string, dryRun bool) int {
	removed := 0
	for _, dir := range orderChildrenFirst(candidates) {
		if c.removeIfEmpty(dir, dryRun) {
			removed++
		}
	}
	return removed
}

// Sweep walks the whole tree and removes every empty directory it finds,
// deepest-first. The root itself is never removed.
func (c *Cleaner) Sweep(dryRun bool) int {
	var dirs []string
	err := fs.WalkDir(c.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		if d.IsDir() && path != "." {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("tree walk aborted")
	}

	sortDeepestFirst(dirs)

	removed := 0
	for _, dir := range dirs {
		if c.removeIfEmpty(dir, dryRun) {
			removed++
		}
	}
	return removed
}

func (c *Cleaner) removeIfEmpty(dir string, dryRun bool) bool {
	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil || len(entries) > 0 {
		return false
	}
	if !dryRun {
		if err := c.fsys.Remove(dir); err != nil {
			c.logger.Debug().Str("dir", dir).Err(err).Msg("could not remove empty folder")
			return false
		}
	}
	c.logger.Debug().Str("dir", dir).Bool("dry_run", dryRun).Msg("empty folder removed")
	return true
}

// orderChildrenFirst topologically sorts candidate directories so that every
// directory comes before any of its ancestors. Candidates outside the
// nesting graph keep a deterministic deepest-first order after the sorted
// ones.
func orderChildrenFirst(candidates []string) []string {
	inSet := make(map[string]bool, len(candidates))
	for _, dir := range candidates {
		inSet[dir] = true
	}

	edges := make([]toposort.Edge, 0)
	for _, dir := range candidates {
		for _, other := range candidates {
			if other != dir && strings.HasPrefix(dir, other+"/") {
				// dir is nested under other, so it must be removed first.
				edges = append(edges, toposort.Edge{dir, other})
			}
		}
	}

	ordered := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))

	sorted, err := toposort.Toposort(edges)
	if err == nil {
		for _, node := range sorted {
			dir, ok := node.(string)
			if !ok || !inSet[dir] || seen[dir] {
				continue
			}
			ordered = append(ordered, dir)
			seen[dir] = true
		}
	}

	rest := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if !seen[dir] {
			rest = append(rest, dir)
			seen[dir] = true
		}
	}
	sortDeepestFirst(rest)

	return append(ordered, rest...)
}

func sortDeepestFirst(dirs []string) {
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], "/"), strings.Count(dirs[j], "/")
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
}
