package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/editor"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/paths"
)

var (
	configGlobal bool
	configFormat string
)

func init() {
	configCmd.PersistentFlags().BoolVarP(&configGlobal, "global", "g", false,
		"use ~/.loom/loom.config instead of the project's")
	configListCmd.Flags().StringVarP(&configFormat, "format", "f", "json",
		"output format: json, yaml, toml")

	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write loom.config",
	Long: `Read and write the project's loom.config, or with --global the
user's ~/.loom/loom.config.

Keys use dot notation for nested values.`,
	Example: `  loomtasks config get sdk_version
  loomtasks config set display.width 640
  loomtasks config list --format toml
  loomtasks config edit --global`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. true, false and numbers are stored typed;
everything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the whole configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

func configTarget() (string, error) {
	if configGlobal {
		home, err := paths.ResolveHome()
		if err != nil {
			return "", err
		}
		return paths.GlobalConfigFile(home), nil
	}
	root := projectDir
	if root == "" {
		root = "."
	}
	return paths.ProjectConfigFile(root), nil
}

func readTarget() (string, config.Document, error) {
	path, err := configTarget()
	if err != nil {
		return "", nil, err
	}
	doc, err := config.ReadJSON(path)
	if err != nil {
		if errors.Is(err, errors.ErrConfigMissing) {
			return path, nil, errors.NewUserError(err, "run: loomtasks init")
		}
		return path, nil, errors.NewConfigError(err)
	}
	return path, doc, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	_, doc, err := readTarget()
	if err != nil {
		return err
	}
	v, ok := doc.Get(args[0])
	if !ok {
		return errors.NewUserError(errors.Newf("%s is not set", args[0]), "run: loomtasks config list")
	}
	switch v.(type) {
	case map[string]any, []any:
		data, err := config.Encode(config.Document{args[0]: v}, config.FormatJSON)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		s, _ := doc.GetString(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configTarget()
	if err != nil {
		return err
	}
	doc, err := config.ReadJSON(path)
	switch {
	case errors.Is(err, errors.ErrConfigMissing):
		doc = config.Document{}
	case err != nil:
		return errors.NewConfigError(err)
	}

	if err := doc.Set(args[0], config.ParseValue(args[1])); err != nil {
		return errors.NewUserError(err, "")
	}
	if configGlobal {
		if err := paths.EnsureDir(paths.LoomDir(paths.Home()), 0); err != nil {
			return errors.Wrap(err, "creating ~/.loom")
		}
	}
	if err := config.WriteJSON(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v in %s\n", args[0], args[1], path)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	format, err := config.ParseFormat(configFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	_, doc, err := readTarget()
	if err != nil {
		return err
	}
	data, err := config.Encode(doc, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path, err := configTarget()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return errors.NewUserError(errors.Newf("%s does not exist", path), "run: loomtasks init")
	}
	return editor.Open(cmd.Context(), path, cmd.OutOrStdout())
}
