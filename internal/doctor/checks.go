package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/paths"
	"github.com/thoreinstein/modcheck/internal/runner"
	"github.com/thoreinstein/modcheck/pkg/fileutil"
)

// ModuleRootCheck verifies that the working directory is inside a module.
type ModuleRootCheck struct {
	// Start is the directory the search begins at.
	Start string
}

var _ Check = (*ModuleRootCheck)(nil)

// NewModuleRootCheck creates a module root check starting at dir.
func NewModuleRootCheck(dir string) *ModuleRootCheck {
	return &ModuleRootCheck{Start: dir}
}

// Name returns the unique identifier for this check.
func (c *ModuleRootCheck) Name() string { return "module-root" }

// Category returns the grouping for this check.
func (c *ModuleRootCheck) Category() string { return "module" }

// Run executes the check.
func (c *ModuleRootCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	root, err := paths.FindModuleRoot(c.Start)
	if err != nil {
		result.Status = SeverityError
		result.Message = "not inside a module"
		result.Details = map[string]any{"start": c.Start, "error": err.Error()}
		result.FixHint = fmt.Sprintf("run modcheck from a directory containing %s", paths.ModuleMarker)
		return result
	}

	result.Status = SeverityPass
	result.Message = "module root found"
	result.Details = map[string]any{"root": root}
	return result
}

// ToolchainCheck verifies that external tools used by validators are installed.
type ToolchainCheck struct {
	// Tools maps a tool name to the executable that provides it.
	Tools  map[string]string
	Runner runner.Runner
}

var _ Check = (*ToolchainCheck)(nil)

// NewToolchainCheck creates a toolchain check.
func NewToolchainCheck(run runner.Runner, tools map[string]string) *ToolchainCheck {
	return &ToolchainCheck{Tools: tools, Runner: run}
}

// Name returns the unique identifier for this check.
func (c *ToolchainCheck) Name() string { return "toolchain" }

// Category returns the grouping for this check.
func (c *ToolchainCheck) Category() string { return "toolchain" }

// Run executes the check.
func (c *ToolchainCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Details: map[string]any{}}
	if len(c.Tools) == 0 {
		result.Status = SeverityInfo
		result.Message = "no external tools required"
		return result
	}

	names := make([]string, 0, len(c.Tools))
	for name := range c.Tools {
		names = append(names, name)
	}
	sort.Strings(names)

	var missing []string
	for _, name := range names {
		exe := c.Tools[name]
		path, err := c.Runner.LookPath(exe)
		if err != nil {
			missing = append(missing, name)
			result.Details[name] = "not found: " + exe
			continue
		}
		result.Details[name] = path
	}

	if len(missing) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d tool(s) not found: %s", len(missing), strings.Join(missing, ", "))
		result.FixHint = "install the missing tools or set tools.<name> in the modcheck config"
		return result
	}
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d tool(s) available", len(names))
	return result
}

// ConfigSyntaxCheck validates modcheck configuration file syntax.
type ConfigSyntaxCheck struct {
	// Files are candidate config paths. Missing files are reported as info.
	Files []string
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a check for the project and user config files.
// moduleRoot may be empty when no module was found.
func NewConfigSyntaxCheck(moduleRoot string) *ConfigSyntaxCheck {
	var files []string
	dirs := []string{paths.UserConfigDir()}
	if dir := paths.ProjectConfigDir(moduleRoot); dir != "" {
		dirs = append([]string{dir}, dirs...)
	}
	for _, dir := range dirs {
		for _, name := range []string{"config.yaml", "config.yml", "config.toml", "config.json"} {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return &ConfigSyntaxCheck{Files: files}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string { return "config-syntax" }

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string { return "config" }

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation across all candidate files.
func (c *ConfigSyntaxCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	var files []syntaxFileResult
	var errorCount, passCount int
	for _, path := range c.Files {
		fr, ok := validateConfigFile(path)
		if !ok {
			continue
		}
		files = append(files, fr)
		if fr.Status == "error" {
			errorCount++
		} else {
			passCount++
		}
	}

	result.Details = map[string]any{
		"files":   files,
		"checked": len(files),
		"errors":  errorCount,
	}

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "review the error details and fix the syntax in each file"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found (defaults in use)"
	}
	return result
}

// validateConfigFile returns false when the file does not exist.
func validateConfigFile(path string) (syntaxFileResult, bool) {
	fr := syntaxFileResult{Path: path}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fr, false
		}
		fr.Status = "error"
		fr.Message = fmt.Sprintf("read error: %v", err)
		return fr, true
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr, true
	}

	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &v)
	case ".json":
		err = json.Unmarshal(data, &v)
	default:
		err = yaml.Unmarshal(data, &v)
	}
	if err != nil {
		fr.Status = "error"
		fr.Message = formatSyntaxError(err)
		return fr, true
	}
	fr.Status = "pass"
	return fr, true
}

// formatSyntaxError extracts position information where the decoder provides it.
func formatSyntaxError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return err.Error()
}

// VCSCheck reports whether the module is under git and has uncommitted changes.
type VCSCheck struct {
	Root string
}

var _ Check = (*VCSCheck)(nil)

// NewVCSCheck creates a VCS check for the module at root.
func NewVCSCheck(root string) *VCSCheck {
	return &VCSCheck{Root: root}
}

// Name returns the unique identifier for this check.
func (c *VCSCheck) Name() string { return "vcs" }

// Category returns the grouping for this check.
func (c *VCSCheck) Category() string { return "module" }

// Run executes the check.
func (c *VCSCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	if c.Root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no module root"
		return result
	}

	repo, err := git.PlainOpenWithOptions(c.Root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "module is not under git version control"
		return result
	}

	wt, err := repo.Worktree()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "repository has no worktree"
		return result
	}
	status, err := wt.Status()
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot read git status: %v", err)
		return result
	}

	if !status.IsClean() {
		var changed []string
		for file := range status {
			changed = append(changed, file)
		}
		sort.Strings(changed)
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d uncommitted change(s)", len(changed))
		result.Details = map[string]any{"changed": changed}
		result.FixHint = "commit or stash changes before running validate --auto-correct"
		return result
	}

	result.Status = SeverityPass
	result.Message = "worktree clean"
	if head, err := repo.Head(); err == nil {
		result.Details = map[string]any{"head": head.Hash().String()}
	}
	return result
}
