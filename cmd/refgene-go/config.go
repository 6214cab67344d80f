package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys maps every recognized configuration key to its value type.
// Keys set here become the defaults for the matching command flags.
var configKeys = map[string]string{
	"verbose":     "bool",
	"view.coding": "bool",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage refgene-go configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.refgene-go.yaml.",
		Example: `  refgene-go config                        # show all config
  refgene-go config set view.coding true   # default view to coding intervals
  refgene-go config get view.coding        # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.refgene-go.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// parseConfigValue validates key against the recognized set and converts
// value to the key's declared type. Rejecting unknown keys catches typos
// that would otherwise silently configure nothing.
func parseConfigValue(key, value string) (any, error) {
	typ, ok := configKeys[key]
	if !ok {
		known := make([]string, 0, len(configKeys))
		for k := range configKeys {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(known, ", "))
	}

	switch typ {
	case "bool":
		switch value {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		default:
			return nil, fmt.Errorf("key %q takes a boolean value, got %q", key, value)
		}
	default:
		return value, nil
	}
}

func runConfigSet(key, value string) error {
	parsed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, parsed)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".refgene-go.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %v in %s\n", key, parsed, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
