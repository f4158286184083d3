package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteFeatureCollection renders a route as GeoJSON: one LineString for the
// whole walk followed by a Point feature per step. Steps that are selected
// waypoints carry waypoint=true.
func RouteFeatureCollection(route Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	waypoints := make(map[NodeID]bool, len(route.Order))
	for _, n := range route.Order {
		waypoints[n.ID] = true
	}

	line := make(orb.LineString, 0, len(route.Path))
	for _, n := range route.Path {
		line = append(line, n.Point())
	}

	walk := geojson.NewFeature(line)
	if route.ID != "" {
		walk.ID = route.ID
	}
	walk.Properties["kind"] = "route"
	walk.Properties["totalNodes"] = route.Stats.TotalNodes
	walk.Properties["totalTransitions"] = route.Stats.TotalTransitions
	walk.Properties["estimatedTime"] = route.Stats.EstimatedTime
	fc.Append(walk)

	for i, n := range route.Path {
		step := geojson.NewFeature(n.Point())
		step.Properties["kind"] = "step"
		step.Properties["step"] = i + 1
		step.Properties["id"] = string(n.ID)
		step.Properties["name"] = n.Name
		step.Properties["waypoint"] = waypoints[n.ID]
		fc.Append(step)
	}

	return fc
}

// GraphFeatureCollection renders positions as Point features and transitions
// as LineString features carrying source/target properties.
func GraphFeatureCollection(snapshot *Snapshot) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, n := range snapshot.Nodes {
		f := geojson.NewFeature(n.Point())
		f.ID = string(n.ID)
		f.Properties["id"] = string(n.ID)
		f.Properties["name"] = n.Name
		if n.Category != "" {
			f.Properties["category"] = n.Category
		}
		fc.Append(f)
	}

	for _, line := range snapshot.Lines() {
		f := geojson.NewFeature(orb.LineString{line.Source.Point(), line.Target.Point()})
		f.Properties["source"] = string(line.Source.ID)
		f.Properties["target"] = string(line.Target.ID)
		if line.Name != "" {
			f.Properties["name"] = line.Name
		}
		fc.Append(f)
	}

	return fc
}

// ParseSnapshotGeoJSON reads a graph from a GeoJSON FeatureCollection.
// Point features are positions (id property, falling back to the feature id);
// LineString features with source and target properties are transitions.
// Other geometries are ignored.
func ParseSnapshotGeoJSON(data []byte) (*Snapshot, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	snapshot := &Snapshot{}
	for i, f := range fc.Features {
		switch geometry := f.Geometry.(type) {
		case orb.Point:
			id := f.Properties.MustString("id", "")
			if id == "" && f.ID != nil {
				id = fmt.Sprint(f.ID)
			}
			if id == "" {
				return nil, fmt.Errorf("feature %d: point without id", i)
			}
			snapshot.Nodes = append(snapshot.Nodes, Node{
				ID:       NodeID(id),
				Name:     f.Properties.MustString("name", id),
				Category: f.Properties.MustString("category", ""),
				X:        geometry.X(),
				Y:        geometry.Y(),
			})

		case orb.LineString:
			source := f.Properties.MustString("source", "")
			target := f.Properties.MustString("target", "")
			if source == "" || target == "" {
				continue
			}
			snapshot.Edges = append(snapshot.Edges, Edge{
				Source: NodeID(source),
				Target: NodeID(target),
				Name:   f.Properties.MustString("name", ""),
			})
		}
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// LoadSnapshotFile loads a snapshot from JSON or, for .geojson files, GeoJSON
func LoadSnapshotFile(filename string) (*Snapshot, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".geojson") {
		return LoadSnapshot(filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	snapshot, err := ParseSnapshotGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid graph %s: %w", filename, err)
	}
	return snapshot, nil
}
