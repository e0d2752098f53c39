// Package paths resolves the directories modcheck reads from.
//
// # XDG Base Directory Compliance
//
// User-level configuration lives under the XDG config home, resolved through
// github.com/adrg/xdg:
//
//	paths.UserConfigDir() // ~/.config/modcheck on Linux
//
// # Module Roots
//
// A module root is the nearest ancestor directory holding a metadata.json
// file. Every validator run is scoped to it:
//
//	root, err := paths.FindModuleRoot(".")
//	if errors.Is(err, paths.ErrNoModuleRoot) {
//	    // not inside a module
//	}
//
// Module-level configuration lives in <root>/.modcheck/.
package paths
