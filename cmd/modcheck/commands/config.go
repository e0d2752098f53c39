package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/modcheck/internal/config"
	"github.com/thoreinstein/modcheck/internal/editor"
	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/paths"
	"github.com/thoreinstein/modcheck/pkg/fileutil"
)

var (
	configInitUser  bool
	configInitForce bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false,
		"write the user config instead of the module config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create modcheck configuration",
	Long: `Show the effective modcheck configuration.

Values come from flags, MODCHECK_* environment variables, the module's
.modcheck/config.yaml and ~/.config/modcheck/config.yaml, in that order.

Without a subcommand, lists all configuration values.`,
	Example: `  # List the effective configuration
  modcheck config

  # Get a single value
  modcheck config get formats

  # Create .modcheck/config.yaml in the current module
  modcheck config init

See Also: modcheck doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. Array values are printed one per line.`,
	Example: `  # Get the tool override for rubocop
  modcheck config get tools.rubocop`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	RunE:  runConfigList,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding the defaults.

The file is created in the current module's .modcheck directory, or in
the user config directory with --user.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in use in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. If no configuration file
exists, suggests running 'modcheck config init'.`,
	Example: `  # Open with a specific editor
  EDITOR=nano modcheck config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

// openEditor is replaced in tests.
var openEditor = func(cmd *cobra.Command, path string) error {
	e := &editor.Editor{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	return e.Open(cmd.Context(), path)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	w := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case map[string]any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshaling value")
		}
		fmt.Fprint(w, string(data))
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}

	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	w := cmd.OutOrStdout()
	if used := config.Used(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# defaults (no config file found)")
	}
	fmt.Fprint(w, string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Used()
	if path == "" {
		return errors.NewUserError(errors.Wrap(errors.ErrNotFound, "no config file"), "Run: modcheck config init")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	return openEditor(cmd, path)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	dir := paths.UserConfigDir()
	if !configInitUser {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		root, err := paths.FindModuleRoot(wd)
		if err != nil {
			return errors.NewUserError(errors.ErrNotInModule, "Run from inside a module, or pass --user")
		}
		dir = paths.ProjectConfigDir(root)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("%s already exists", configPath), "Pass --force to overwrite it")
	}

	if err := paths.EnsureDir(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(configPath, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
