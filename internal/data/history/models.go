package history

import "time"

const SchemaVersion = 1

// Run is the summary of one analysis pass. Runs are only ever appended and
// listed; nothing reads them back into an analysis.
type Run struct {
	RunID              string    `json:"run_id"`
	ProjectKey         string    `json:"project_key"`
	Timestamp          time.Time `json:"timestamp"`
	RootModule         string    `json:"root_module,omitempty"`
	ModuleCount        int       `json:"module_count"`
	FileCount          int       `json:"file_count"`
	EdgeCount          int       `json:"edge_count"`
	CycleCount         int       `json:"cycle_count"`
	UnresolvedCount    int       `json:"unresolved_count"`
	MissingDescriptors int       `json:"missing_descriptors"`
	MaxLevel           int       `json:"max_level"`
}

// Coverage is the share of modules carrying a build descriptor.
func (r Run) Coverage() float64 {
	if r.ModuleCount == 0 {
		return 0
	}
	return float64(r.ModuleCount-r.MissingDescriptors) / float64(r.ModuleCount)
}
