package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sprout-ui/sprout/pkg/config"
	"github.com/sprout-ui/sprout/pkg/errors"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the resolved configuration",
		Long: `Load sprout.yaml from the given directory (default: the enclosing Go
module, or the current directory) and print it with defaults filled in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			res, err := resolveConfig(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			data, err := yaml.Marshal(res)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

// resolveConfig resolves dir, or the project root when dir is empty.
func resolveConfig(dir string) (*config.Resolved, error) {
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			root = "."
		}
		dir = root
	}
	res, err := config.Resolve(dir)
	if err != nil {
		return nil, &errors.SproutError{Op: "config.Resolve", Kind: errors.KindConfig, Err: err}
	}
	return res, nil
}
