// Package planner computes game-plan routes through a graph of BJJ positions.
//
// Positions are nodes and techniques/transitions are undirected, unit-cost
// edges. Given a handful of selected positions, FindOptimalPath picks a
// visiting order with a nearest-neighbor heuristic over layout coordinates,
// and FindDetailedPath stitches minimum-hop segments between consecutive
// waypoints into one walk. All planning functions are pure: they hold no state
// between calls and report failure through return values.
package planner
