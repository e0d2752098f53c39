package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}
}

func TestExpandTargets(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "metadata.json", "tasks/a.json", "tasks/b.json", "tasks/a.sh", "lib/x.rb", "sub/metadata.json")
	patterns := []string{"metadata.json", "tasks/*.json"}

	tests := []struct {
		name        string
		targets     []string
		wantFiles   []string
		wantMissing []string
	}{
		{
			name:      "no targets uses root",
			wantFiles: []string{"metadata.json", "tasks/a.json", "tasks/b.json"},
		},
		{
			name:      "file target matching pattern",
			targets:   []string{"tasks/a.json"},
			wantFiles: []string{"tasks/a.json"},
		},
		{
			name:      "file target matching base name",
			targets:   []string{"sub/metadata.json"},
			wantFiles: []string{"sub/metadata.json"},
		},
		{
			name:    "file target not matching",
			targets: []string{"lib/x.rb"},
		},
		{
			name:      "directory target",
			targets:   []string{"tasks"},
			wantFiles: []string{"tasks/a.json", "tasks/b.json"},
		},
		{
			name:      "root directory target",
			targets:   []string{"."},
			wantFiles: []string{"metadata.json", "tasks/a.json", "tasks/b.json"},
		},
		{
			name:        "missing target",
			targets:     []string{"nope.json", "metadata.json"},
			wantFiles:   []string{"metadata.json"},
			wantMissing: []string{"nope.json"},
		},
		{
			name:      "duplicates collapse",
			targets:   []string{"metadata.json", "."},
			wantFiles: []string{"metadata.json", "tasks/a.json", "tasks/b.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ExpandTargets(Options{Root: root, Targets: tt.targets}, patterns...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, set.Files)
			assert.Equal(t, tt.wantMissing, set.Missing)
		})
	}
}

func TestMatchTargets(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "metadata.json", "Gemfile", "lib/x.rb", "lib/foo.pp", "spec/x_spec.rb")
	patterns := []string{"*.rb", "Gemfile"}

	tests := []struct {
		name        string
		targets     []string
		wantFiles   []string
		wantMissing []string
	}{
		{name: "no targets"},
		{
			name:      "matching files kept in order",
			targets:   []string{"lib/x.rb", "Gemfile"},
			wantFiles: []string{"lib/x.rb", "Gemfile"},
		},
		{
			name:    "other files dropped",
			targets: []string{"lib/foo.pp", "metadata.json"},
		},
		{
			name:      "directories kept whole",
			targets:   []string{"spec", "lib/foo.pp"},
			wantFiles: []string{"spec"},
		},
		{
			name:      "absolute target made relative",
			targets:   []string{filepath.Join(root, "lib", "x.rb")},
			wantFiles: []string{"lib/x.rb"},
		},
		{
			name:        "missing target",
			targets:     []string{"lib/gone.rb", "lib/x.rb"},
			wantFiles:   []string{"lib/x.rb"},
			wantMissing: []string{"lib/gone.rb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := MatchTargets(Options{Root: root, Targets: tt.targets}, patterns...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, set.Files)
			assert.Equal(t, tt.wantMissing, set.Missing)
		})
	}
}

func TestMatchTargets_BadPattern(t *testing.T) {
	_, err := MatchTargets(Options{Root: t.TempDir(), Targets: []string{"x"}}, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad pattern")
}
