// Package cli implements the pathctl command line: offline path planning,
// body cost derivation and room routing against a YAML world file.
package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"region-path-service/internal/config"
)

// Flags shared by every subcommand.
type globalOptions struct {
	worldPath  string
	jsonOutput bool
	verbose    bool
	cfg        config.Config
}

// NewRootCmd builds the pathctl command tree.
func NewRootCmd(version string) *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:     "pathctl",
		Version: version,
		Short:   "Plan paths across rooms of a tile world",
		Long: `pathctl runs the path planner offline against a YAML world file.

It plans tile paths between rooms, derives movement costs from an agent body,
and shows the room-level route the planner would restrict a search to.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !g.verbose {
				log.SetOutput(io.Discard)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			g.cfg = cfg
			if !cmd.Flags().Changed("world") && g.worldPath == "" {
				g.worldPath = cfg.WorldPath
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&g.worldPath, "world", "w", "", "World file (default $WORLD_PATH or data/world.yaml)")
	root.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log planner operations to stderr")

	root.AddCommand(newPlanCmd(g), newCostsCmd(g), newRouteCmd(g))
	return root
}

// Execute runs pathctl with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
