package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/townpages/townpages-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values. Keys use dot notation, e.g.
sheets.spreadsheet_id or serve.origin.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(cmd.Context()); err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())
	for _, key := range configfile.KnownKeys() {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-25s (not set)  %s\n", key, configfile.DescribeKey(key))
			continue
		}
		cmd.Printf("  %-25s %-10v %s\n", key, value, configfile.DescribeKey(key))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(cmd.Context()); err != nil {
		return err
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(cmd.Context()); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, coerceValue(raw)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, raw)
	if !configfile.IsKnownKey(key) {
		cmd.Printf("Note: %q is not a key townpages reads; see 'townpages config' for known keys.\n", key)
	}
	return nil
}

// coerceValue interprets booleans, integers and comma-separated lists
// so TOML values keep their natural types.
func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		return values
	}
	return raw
}
