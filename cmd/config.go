package cmd

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// applyConfigFile sets every flag named in the TOML file at path that was not
// given on the command line. Keys are the long flag names.
func applyConfigFile(cmd *cobra.Command, path string) error {
	var values map[string]any
	if _, err := toml.DecodeFile(path, &values); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	for key, raw := range values {
		flag := cmd.Flags().Lookup(key)
		if flag == nil || key == "config" {
			return fmt.Errorf("config file %s: unknown option %q", path, key)
		}
		if flag.Changed {
			continue
		}
		if err := flag.Value.Set(configValue(raw)); err != nil {
			return fmt.Errorf("config file %s: option %q: %w", path, key, err)
		}
	}
	return nil
}

func configValue(raw any) string {
	list, ok := raw.([]any)
	if !ok {
		return fmt.Sprint(raw)
	}
	parts := make([]string, 0, len(list))
	for _, v := range list {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ",")
}
