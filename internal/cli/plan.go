package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"region-path-service/internal/adapters/obstacles"
	"region-path-service/internal/adapters/pathfinder"
	"region-path-service/internal/adapters/worldmap"
	"region-path-service/internal/domain"
	"region-path-service/internal/services"
)

type planOptions struct {
	from       string
	to         []string
	maxOps     int
	maxRooms   int
	avoid      []string
	body       []string
	used       int
	noObstacle bool
}

type planOutput struct {
	From   string   `json:"from"`
	Path   []string `json:"path"`
	Length int      `json:"length"`
	Found  bool     `json:"found"`
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	o := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a tile path to the nearest target",
		Long: `Plan a tile path from --from to the nearest of the --to targets.

Positions are written ROOM:X,Y; targets may add :RANGE, e.g. W0N1:25,25:1.
With --body the terrain costs are derived from the agent's body.`,
		Example: `  pathctl plan --from W1N1:10,10 --to W0N1:25,25:1
  pathctl plan --from W1N1:10,10 --to E0N1:5,5 --body move,carry,carry --used 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, g, o)
		},
	}

	cmd.Flags().StringVar(&o.from, "from", "", "Origin position ROOM:X,Y")
	cmd.Flags().StringArrayVar(&o.to, "to", nil, "Target ROOM:X,Y[:RANGE] (repeatable)")
	cmd.Flags().IntVar(&o.maxOps, "max-ops", 0, "Search operation budget (0 keeps the configured default)")
	cmd.Flags().IntVar(&o.maxRooms, "max-rooms", 0, "Maximum rooms the search may open (0 keeps the configured default)")
	cmd.Flags().StringSliceVar(&o.avoid, "avoid", nil, "Rooms the route must not cross")
	cmd.Flags().StringSliceVar(&o.body, "body", nil, "Agent body, e.g. move,move*2,carry,work!")
	cmd.Flags().IntVar(&o.used, "used", 0, "Used cargo capacity")
	cmd.Flags().BoolVar(&o.noObstacle, "no-obstacles", false, "Ignore obstacles listed in the world file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runPlan(cmd *cobra.Command, g *globalOptions, o *planOptions) error {
	origin, err := parsePosition(o.from)
	if err != nil {
		return err
	}
	targets := make([]domain.MoveTarget, 0, len(o.to))
	for _, s := range o.to {
		t, err := parseTarget(s)
		if err != nil {
			return err
		}
		targets = append(targets, t)
	}

	opts := &domain.MoveOpts{}
	if o.maxOps > 0 {
		opts.MaxOps = domain.Ptr(o.maxOps)
	}
	if o.maxRooms > 0 {
		opts.MaxRooms = domain.Ptr(o.maxRooms)
	}
	if opts.AvoidRooms, err = parseRooms(o.avoid); err != nil {
		return err
	}
	if len(o.body) > 0 {
		body, err := parseBody(o.body)
		if err != nil {
			return err
		}
		opts.Composition = &domain.AgentComposition{Body: body, UsedCapacity: o.used}
	}

	world, err := worldmap.LoadWorld(g.worldPath)
	if err != nil {
		return err
	}
	if !o.noObstacle {
		opts.RoomCallback = obstacles.RoomCallback(obstacles.NewMemorySource(world.Obstacles(), world.Blocked()))
	}

	planner := services.NewPlanner(
		pathfinder.NewGridSearch(world),
		worldmap.NewRouteFinder(world),
		world,
		g.cfg.MoveDefaults,
	)

	path, err := planner.GeneratePath(cmd.Context(), origin, targets, opts)
	if err != nil && !errors.Is(err, services.ErrPathNotFound) {
		return err
	}

	out := planOutput{From: origin.String(), Path: make([]string, 0, len(path)), Length: len(path), Found: err == nil}
	for _, p := range path {
		out.Path = append(out.Path, p.String())
	}

	w := cmd.OutOrStdout()
	if g.jsonOutput {
		return printJSON(w, out)
	}

	if !out.Found {
		printWarning(w, fmt.Sprintf("no path from %s to any target", origin))
		return nil
	}
	printSuccess(w, fmt.Sprintf("path found: %d steps", out.Length))
	printHeader(w, "Path")
	for i, p := range out.Path {
		fmt.Fprintf(w, "  %3d  %s\n", i+1, p)
	}
	printDim(w, "targets: "+strings.Join(o.to, " "))
	return nil
}
