// Package config provides configuration management for the modcheck CLI.
//
// Settings are resolved in this order, highest precedence first: command
// line flags, MODCHECK_* environment variables, the module's
// .modcheck/config.yaml, the user's config file, then built-in defaults.
//
// # Configuration File
//
// The user configuration lives at ~/.config/modcheck/config.yaml (the XDG
// config home). A module may carry its own .modcheck/config.yaml which is
// searched first:
//
//	version: 1
//	formats:
//	  - text
//	  - junit:reports/validate.xml
//	parallel: true
//	auto_correct: false
//	tools:
//	  rubocop: /opt/ruby/bin/rubocop
//
// # Loading Configuration
//
// Call [Init] once with the module root, then [Load]:
//
//	config.Init(root)
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Load validates the result; errors wrap [errors.ErrInvalidConfig].
package config
