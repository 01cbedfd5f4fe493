package ports

import "context"

// One delivery task in a solver request. ID is the caller's handle:
// solved steps reference jobs by this id, nothing else.
type Job struct {
	ID       int       `json:"id"`
	Location []float64 `json:"location"` // [lon, lat]
	Amount   []int     `json:"amount"`
	Service  int       `json:"service"` // seconds at the stop
}

// One vehicle in a solver request. Start and End are the depot
// coordinates as [lon, lat]; TimeWindow is seconds since midnight.
type VehicleSpec struct {
	ID         int       `json:"id"`
	Profile    string    `json:"profile"`
	Start      []float64 `json:"start"`
	End        []float64 `json:"end"`
	Capacity   []int     `json:"capacity"`
	TimeWindow [2]int    `json:"time_window"`
}

// Step types the solver emits within a route.
const (
	StepTypeStart = "start"
	StepTypeJob   = "job"
	StepTypeEnd   = "end"
)

// A single movement in a solved route. Job is meaningful only when
// Type == StepTypeJob.
type SolvedStep struct {
	Type string `json:"type"`
	Job  int    `json:"job"`
}

// The solver's route for one vehicle: ordered steps plus the encoded
// polyline of the driven path.
type SolvedRoute struct {
	Vehicle  int          `json:"vehicle"`
	Steps    []SolvedStep `json:"steps"`
	Geometry string       `json:"geometry"`
}

// Contract for the external constrained-optimization solver.
//
// Solve submits jobs and vehicles and returns one SolvedRoute per
// vehicle that received assignments. The solver owns all combinatorial
// work; callers only prepare inputs and consume outputs.
type OptimizationSolver interface {
	Solve(ctx context.Context, jobs []Job, vehicles []VehicleSpec) ([]SolvedRoute, error)
}
