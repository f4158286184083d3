package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	planner "path-planner"
	"path-planner/internal/config"
)

var (
	graphFile   string
	geojsonFile string

	titleColor    = color.New(color.FgCyan, color.Bold)
	waypointColor = color.New(color.FgGreen, color.Bold)
	stepColor     = color.New(color.FgWhite)
	failColor     = color.New(color.FgRed, color.Bold)
)

var planCmd = &cobra.Command{
	Use:   "plan <position-id> <position-id> [position-id...]",
	Short: "Plan a route through the given positions",
	Long: `Order the given positions with the nearest-neighbor heuristic and connect
consecutive positions with the fewest transitions.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := loadGraph()
		if err != nil {
			return err
		}

		selected, err := snapshot.Resolve(toNodeIDs(args))
		if err != nil {
			return err
		}

		route, err := planner.Plan(snapshot.Graph(), selected, snapshot.Nodes)
		if err != nil {
			failColor.Fprintln(cmd.ErrOrStderr(), "No valid path found between selected positions")
			return err
		}

		if geojsonFile != "" {
			data, err := planner.RouteFeatureCollection(route).MarshalJSON()
			if err != nil {
				return fmt.Errorf("failed to encode route: %w", err)
			}
			if err := os.WriteFile(geojsonFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", geojsonFile, err)
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(route)
		}

		printRoute(cmd.OutOrStdout(), route)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <position-id> [position-id...]",
	Short: "Check that a walk is still possible on the graph",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := loadGraph()
		if err != nil {
			return err
		}

		path := make([]planner.Node, len(args))
		for i, id := range toNodeIDs(args) {
			path[i] = planner.Node{ID: id}
		}

		valid := planner.ValidatePath(path, snapshot.Graph())
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]bool{"valid": valid})
		}
		if !valid {
			failColor.Fprintln(cmd.OutOrStdout(), "invalid")
			return errors.New("path is not possible on this graph")
		}
		waypointColor.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{planCmd, validateCmd} {
		cmd.Flags().StringVarP(&graphFile, "graph", "g", "", "graph file (.json or .geojson); defaults to graph.file from the config")
	}
	planCmd.Flags().StringVar(&geojsonFile, "geojson", "", "also write the route as GeoJSON to this file")
}

// loadGraph reads the graph named by --graph, falling back to the config
func loadGraph() (*planner.Snapshot, error) {
	file := graphFile
	if file == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		file = cfg.Graph.File
	}
	return planner.LoadSnapshotFile(file)
}

func toNodeIDs(args []string) []planner.NodeID {
	ids := make([]planner.NodeID, len(args))
	for i, a := range args {
		ids[i] = planner.NodeID(a)
	}
	return ids
}

func printRoute(w io.Writer, route planner.Route) {
	waypoints := make(map[planner.NodeID]bool, len(route.Order))
	for _, n := range route.Order {
		waypoints[n.ID] = true
	}

	titleColor.Fprintln(w, "Your Game Plan")
	fmt.Fprintf(w, "%d positions, %d transitions, ~%d min\n\n",
		route.Stats.TotalNodes, route.Stats.TotalTransitions, route.Stats.EstimatedTime)

	for i, n := range route.Path {
		if waypoints[n.ID] {
			waypointColor.Fprintf(w, "%3d. %s (%s)\n", i+1, n.Name, n.ID)
		} else {
			stepColor.Fprintf(w, "%3d. %s (%s)\n", i+1, n.Name, n.ID)
		}
	}
}
