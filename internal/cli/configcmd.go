package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bnema/duotone/internal/infrastructure/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(newConfigPrintCmd())
	return cmd
}

func newConfigPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		Long:  "Print every setting after merging defaults, the config file and DUOTONE_* environment overrides.",
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr, err := config.NewManager()
			if err != nil {
				return err
			}
			if err := mgr.Load(); err != nil {
				return err
			}

			settings := flattenSettings("", mgr.AllSettings())
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("%s = %v\n", k, settings[k])
			}
			return nil
		},
	}
}

func flattenSettings(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range flattenSettings(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}
