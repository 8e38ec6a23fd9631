package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"region-path-service/internal/domain"
	"region-path-service/internal/services"
)

type costsOutput struct {
	Road       int  `json:"road"`
	Plain      int  `json:"plain"`
	Swamp      int  `json:"swamp"`
	Applicable bool `json:"applicable"`
}

func newCostsCmd(g *globalOptions) *cobra.Command {
	var body []string
	var used int

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Derive terrain costs from an agent body",
		Example: `  pathctl costs --body move,carry,carry --used 60
  pathctl costs --body move*2,work,work --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := parseBody(body)
			if err != nil {
				return err
			}

			defaults := services.ResolveMoveOpts(g.cfg.MoveDefaults, nil).Costs
			costs, err := services.DeriveTerrainCosts(domain.AgentComposition{Body: segments, UsedCapacity: used}, defaults)
			if err != nil && !errors.Is(err, services.ErrInapplicableCostModel) {
				return err
			}
			out := costsOutput{Road: costs.Road, Plain: costs.Plain, Swamp: costs.Swamp, Applicable: err == nil}

			w := cmd.OutOrStdout()
			if g.jsonOutput {
				return printJSON(w, out)
			}
			if !out.Applicable {
				printWarning(w, "body has no working traction, showing configured costs")
			}
			printHeader(w, "Terrain costs")
			printLabelValue(w, "road", out.Road)
			printLabelValue(w, "plain", out.Plain)
			printLabelValue(w, "swamp", out.Swamp)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&body, "body", nil, "Agent body, e.g. move,move*2,carry,work!")
	cmd.Flags().IntVar(&used, "used", 0, "Used cargo capacity")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}
