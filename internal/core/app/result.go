package app

import (
	"time"

	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
)

// Result is one complete analysis pass. A published Result is never mutated;
// changes produce a new Result that replaces it.
type Result struct {
	RunID      string
	RootModule string
	FileMode   bool
	Collection *graph.Collection
	Cycles     [][]string
	Missing    []graph.DescriptorRow
	Unresolved []depmap.Unresolved
	Drift      []depmap.Drift
	// FileCount is the number of analyzed files, build descriptors excluded.
	FileCount int
	Duration  time.Duration
	Finished  time.Time
}

func (r *Result) update() Update {
	if r == nil {
		return Update{}
	}
	return Update{
		RunID:       r.RunID,
		RootModule:  r.RootModule,
		FileMode:    r.FileMode,
		ModuleCount: r.Collection.Len(),
		FileCount:   r.FileCount,
		EdgeCount:   r.Collection.EdgeCount(),
		Cycles:      r.Cycles,
		Unresolved:  len(r.Unresolved),
		Missing:     len(r.Missing),
		Drift:       len(r.Drift),
	}
}

// withCollection copies r around a replacement collection, refreshing the
// derived descriptor rows.
func (r *Result) withCollection(c *graph.Collection) *Result {
	next := *r
	next.Collection = c
	if !r.FileMode {
		next.Missing = c.MissingDescriptors()
	}
	return &next
}
