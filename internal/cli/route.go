package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"region-path-service/internal/adapters/worldmap"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
	"region-path-service/internal/services"
)

type routeOutput struct {
	Route []domain.RoomName `json:"route"`
	Hops  int               `json:"hops"`
}

func newRouteCmd(g *globalOptions) *cobra.Command {
	var from string
	var to []string
	var avoid []string
	var maxRooms int

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show the room route to the closest target room",
		Example: `  pathctl route --from W1N1 --to E0N1
  pathctl route --from W1N1 --to E0N1,W1S0 --avoid W0N1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseRooms([]string{from})
			if err != nil {
				return err
			}
			targets, err := parseRooms(to)
			if err != nil {
				return err
			}
			avoidRooms, err := parseRooms(avoid)
			if err != nil {
				return err
			}

			world, err := worldmap.LoadWorld(g.worldPath)
			if err != nil {
				return err
			}

			limits := ports.RouteOptions{AvoidRooms: avoidRooms, MaxRooms: maxRooms}
			if limits.MaxRooms == 0 {
				limits.MaxRooms = services.ResolveMoveOpts(g.cfg.MoveDefaults, nil).MaxRooms
			}

			route, err := services.SelectRoute(cmd.Context(), origin[0], targets, worldmap.NewRouteFinder(world), limits)
			if err != nil {
				return err
			}
			if route == nil {
				// Origin is already a target room.
				route = domain.Route{origin[0]}
			}

			w := cmd.OutOrStdout()
			out := routeOutput{Route: route, Hops: route.Hops()}
			if g.jsonOutput {
				return printJSON(w, out)
			}
			printSuccess(w, fmt.Sprintf("route found: %d hops", out.Hops))
			for i, room := range route {
				fmt.Fprintf(w, "  %3d  %s\n", i, room)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin room")
	cmd.Flags().StringSliceVar(&to, "to", nil, "Target rooms")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "Rooms the route must not cross")
	cmd.Flags().IntVar(&maxRooms, "max-rooms", 0, "Maximum room transitions (0 keeps the configured default)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
