package organize

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"curator/internal/category"
	"curator/internal/naming"
)

// RenameAction renames a file within its current directory.
type RenameAction struct {
	Original string
	NewPath  string
	Reason   string
}

// MoveAction relocates a file into the organized tree.
type MoveAction struct {
	Original    string
	Destination string
	Category    category.Category
	Reason      string
}

// Plan is the computed outcome of one planning pass: renames first, then
// moves, in descriptor order. Planning the same inputs twice yields the
// same plan.
type Plan struct {
	Renames []RenameAction
	Moves   []MoveAction
}

// TotalActions counts every action in the plan.
func (p *Plan) TotalActions() int {
	return len(p.Renames) + len(p.Moves)
}

// Options configures planning.
type Options struct {
	// IntoFolders moves files into per-category folders under the target
	// root; when false, files are renamed in place.
	IntoFolders bool
	// EntityFolders groups files under a per-entity subfolder of the
	// category folder when the descriptor carries an entity.
	EntityFolders bool
	// EntityInFilename folds the entity into the filename stem instead of
	// the folder structure.
	EntityInFilename bool
	// Subcategories maps keywords to a subfolder of the category folder.
	// A file whose normalized name contains a keyword lands in that
	// subfolder. Keywords are tried in sorted order so planning stays
	// deterministic.
	Subcategories map[string]string
	// Rules drives filename normalization.
	Rules naming.Rules
}

// BuildPlan maps each descriptor to a collision-free destination. It is a
// pure function: collisions are resolved against a simulated map of names
// claimed per destination directory, so a whole batch plans in one pass and
// dry-run planning is identical to real planning.
func BuildPlan(descriptors []FileDescriptor, targetRoot string, opts Options) *Plan {
	plan := &Plan{}
	used := make(map[string]map[string]struct{})

	for _, d := range descriptors {
		name := normalizedName(d, opts)
		destDir := destinationDir(d, name, targetRoot, opts)
		name = claimName(used, destDir, name)
		destPath := filepath.Join(destDir, name)

		if destPath == d.Path {
			continue
		}
		if destDir == filepath.Dir(d.Path) {
			plan.Renames = append(plan.Renames, RenameAction{
				Original: d.Path,
				NewPath:  destPath,
				Reason:   reason(d),
			})
			continue
		}
		plan.Moves = append(plan.Moves, MoveAction{
			Original:    d.Path,
			Destination: destPath,
			Category:    d.Category,
			Reason:      reason(d),
		})
	}
	return plan
}

func normalizedName(d FileDescriptor, opts Options) string {
	stem := d.Stem
	if d.SuggestedName != "" {
		stem = d.SuggestedName
	}
	if opts.EntityInFilename && d.Entity != "" {
		stem = d.Entity + " " + stem
	}
	ext := d.Extension
	if d.ExtensionMismatch && d.DetectedExtension != "" {
		ext = d.DetectedExtension
	}
	return naming.Normalize(stem, ext, opts.Rules, d.ModTime, d.Category)
}

func destinationDir(d FileDescriptor, name, targetRoot string, opts Options) string {
	if !opts.IntoFolders {
		return filepath.Dir(d.Path)
	}
	dir := filepath.Join(targetRoot, d.Category.Folder())
	if sub := subcategoryFor(name, opts.Subcategories); sub != "" {
		dir = filepath.Join(dir, sub)
	}
	if opts.EntityFolders && !opts.EntityInFilename && d.Entity != "" {
		dir = filepath.Join(dir, entityFolder(d.Entity, opts.Rules))
	}
	return dir
}

func subcategoryFor(name string, subs map[string]string) string {
	if len(subs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lower := strings.ToLower(name)
	for _, k := range keys {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return subs[k]
		}
	}
	return ""
}

// entityFolder normalizes an entity label into a folder name using the same
// cleaning rules as filenames, minus any date prefixing.
func entityFolder(entity string, rules naming.Rules) string {
	rules.AddDatePrefix = false
	return naming.Normalize(entity, "", rules, time.Time{}, category.Other)
}

// claimName reserves a filename inside dir, appending a zero-padded counter
// until it is unique within this plan. Renames and moves share the same
// bookkeeping, so no two actions can target one path.
func claimName(used map[string]map[string]struct{}, dir, name string) string {
	names := used[dir]
	if names == nil {
		names = make(map[string]struct{})
		used[dir] = names
	}
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, taken := names[candidate]; !taken {
			names[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%02d%s", stem, n, ext)
	}
}

func reason(d FileDescriptor) string {
	var parts []string
	if d.SuggestedName != "" {
		parts = append(parts, "name derived from embedded metadata")
	}
	if d.ExtensionMismatch && d.DetectedExtension != "" {
		parts = append(parts, fmt.Sprintf("extension corrected to %s", d.DetectedExtension))
	}
	if len(parts) == 0 {
		parts = append(parts, "filename normalized")
	}
	return strings.Join(parts, "; ")
}
