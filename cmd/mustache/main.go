// Command mustache renders a Mustache template from the command line and
// runs YAML-driven spec suites against this engine.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/dstq/mustache"
	"github.com/dstq/mustache/adapters"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mustache",
		Short: "Compile and render Mustache templates",
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(newSpecCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var dataPath string
	var partialsDir string
	var forceRaw bool

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template file against a JSON, YAML or JSON-with-comments data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiler := mustache.New()
			if forceRaw {
				compiler = compiler.WithEscapeMode(mustache.EscapeRaw)
			}
			if partialsDir != "" {
				compiler = compiler.WithPartials(&mustache.FileProvider{Paths: []string{partialsDir}})
			}

			tmpl, err := compiler.CompileFile(args[0])
			if err != nil {
				return err
			}

			ctx, err := loadContext(dataPath)
			if err != nil {
				return err
			}

			out, err := tmpl.Render(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "data file (.json, .yaml/.yml, or .jsonc/.hujson)")
	cmd.Flags().StringVarP(&partialsDir, "partials", "p", "", "directory to resolve {{>partial}} tags against")
	cmd.Flags().BoolVar(&forceRaw, "raw", false, "disable HTML escaping")
	return cmd
}

// loadContext reads path and decodes it per its extension: .yaml/.yml via
// the YAML adapter, anything else as JSON, tolerating comments and
// trailing commas via hujson.Minimize first (bare JSON is a strict subset
// so this never rejects a plain .json file).
func loadContext(path string) (mustache.Context, error) {
	if path == "" {
		return adapters.FromGoValue(map[string]interface{}{}), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		return adapters.FromYAML(data)
	}
	clean, err := hujson.Minimize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return adapters.FromJSON(clean)
}

func newSpecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec <dir>",
		Short: "Run the YAML spec suites in dir against this engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := mustache.RunSpecDir(args[0])
			if err != nil {
				return err
			}
			passed := 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(cmd.OutOrStdout(), "ERROR %s/%s: %v\n", r.File, r.Name, r.Err)
				case !r.Passed:
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s/%s\n", r.File, r.Name)
				default:
					passed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d passed\n", passed, len(results))
			if passed != len(results) {
				return fmt.Errorf("%d spec case(s) failed", len(results)-passed)
			}
			return nil
		},
	}
	return cmd
}
