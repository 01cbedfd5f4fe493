package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"strings"
	"sync"
)

const (
	// One solver capacity unit covers this many kilograms of parcels.
	capacityUnitKg = 100.0

	// Fixed unloading time at every stop.
	serviceDurationSec = 300

	// Daily shift window, seconds since midnight (08:00 - 18:00 local).
	shiftStartSec = 28800
	shiftEndSec   = 64800

	vehicleProfile = "driving-car"

	geocodeConcurrency = 5
)

// Plan is the outcome of one optimization call.
//
// Routes is keyed by vehicle id and holds only vehicles that received
// at least one stop. Prepared and GeocodeFailures let callers tell an
// empty input apart from a batch whose geocoding entirely failed.
type Plan struct {
	Routes          map[int]domain.Route
	Prepared        int
	GeocodeFailures int
}

// Optimizer converts raw address records into per-vehicle routes:
// geocode each record, build a capacity- and time-window-constrained
// request, submit it to the external solver, and reassemble its answer
// into ordered Route values.
//
// The optimizer holds no state between calls.
type Optimizer struct {
	geocoder  *Geocoder
	solver    ports.OptimizationSolver
	vehicles  []domain.Vehicle
	warehouse domain.Coordinates
}

func NewOptimizer(
	geocoder *Geocoder,
	solver ports.OptimizationSolver,
	vehicles []domain.Vehicle,
	warehouse domain.Coordinates,
) *Optimizer {
	return &Optimizer{
		geocoder:  geocoder,
		solver:    solver,
		vehicles:  vehicles,
		warehouse: warehouse,
	}
}

// Optimize plans routes for the given records.
//
// Per-record geocoding failures are dropped and counted, not fatal.
// A solver failure returns a non-nil error alongside the partial Plan
// (its counters remain valid). Empty input returns an empty Plan with
// no external calls.
func (o *Optimizer) Optimize(ctx context.Context, records []domain.AddressRecord) (*Plan, error) {
	plan := &Plan{Routes: map[int]domain.Route{}}

	if len(records) == 0 {
		return plan, nil
	}

	points, failures := o.preparePoints(ctx, records)
	plan.Prepared = len(points)
	plan.GeocodeFailures = failures
	obs.Count(ctx, "geocode.failures", failures)

	if len(points) == 0 {
		return plan, nil
	}

	// The job id is the index into points. Reconstruction depends on
	// this array staying untouched between here and the response.
	jobs := make([]ports.Job, 0, len(points))
	for idx, p := range points {
		jobs = append(jobs, ports.Job{
			ID:       idx,
			Location: p.Coords.LonLat(),
			Amount:   []int{capacityUnits(p.Weight)},
			Service:  serviceDurationSec,
		})
	}

	specs := make([]ports.VehicleSpec, 0, len(o.vehicles))
	for _, v := range o.vehicles {
		specs = append(specs, ports.VehicleSpec{
			ID:         v.ID,
			Profile:    vehicleProfile,
			Start:      o.warehouse.LonLat(),
			End:        o.warehouse.LonLat(),
			Capacity:   []int{v.Capacity},
			TimeWindow: [2]int{shiftStartSec, shiftEndSec},
		})
	}

	solved, err := o.solver.Solve(ctx, jobs, specs)
	if err != nil {
		return plan, fmt.Errorf("optimize: solve: %w", err)
	}

	for _, sr := range solved {
		route, err := reconstructRoute(sr, points)
		if err != nil {
			return plan, fmt.Errorf("optimize: %w", err)
		}
		if len(route.Points) == 0 {
			continue
		}
		plan.Routes[sr.Vehicle] = route
	}

	return plan, nil
}

// preparePoints geocodes records with bounded concurrency, preserving
// input order. Records with blank addresses are skipped silently;
// geocoding failures are dropped and counted.
func (o *Optimizer) preparePoints(
	ctx context.Context,
	records []domain.AddressRecord,
) ([]domain.RoutePoint, int) {
	type slot struct {
		point  domain.RoutePoint
		ok     bool
		failed bool
	}
	slots := make([]slot, len(records))

	sem := make(chan struct{}, geocodeConcurrency)
	var wg sync.WaitGroup

	for i, rec := range records {
		if strings.TrimSpace(rec.Address) == "" {
			continue
		}

		wg.Add(1)
		go func(i int, rec domain.AddressRecord) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			coords, err := o.geocoder.Geocode(ctx, rec.Address)
			if err != nil {
				log.Printf("geocode failed address=%q err=%v", rec.Address, err)
				slots[i].failed = true
				return
			}

			company := strings.TrimSpace(rec.Company)
			if company == "" {
				company = domain.DefaultCompanyName
			}
			weight := rec.Weight
			if weight < 0 {
				weight = 0
			}

			slots[i] = slot{
				point: domain.RoutePoint{
					Company:      company,
					Address:      rec.Address,
					Weight:       weight,
					Coords:       coords,
					DeliveryDate: rec.DeliveryDate,
					Manager:      rec.Manager,
				},
				ok: true,
			}
		}(i, rec)
	}
	wg.Wait()

	points := make([]domain.RoutePoint, 0, len(records))
	failures := 0
	for _, s := range slots {
		if s.failed {
			failures++
			continue
		}
		if s.ok {
			points = append(points, s.point)
		}
	}

	return points, failures
}

// reconstructRoute maps solved steps back onto prepared points by job
// id, in the solver's visiting order.
func reconstructRoute(sr ports.SolvedRoute, points []domain.RoutePoint) (domain.Route, error) {
	route := domain.Route{VehicleID: sr.Vehicle, Geometry: sr.Geometry}

	for _, step := range sr.Steps {
		if step.Type != ports.StepTypeJob {
			continue
		}
		if step.Job < 0 || step.Job >= len(points) {
			return domain.Route{}, fmt.Errorf(
				"reconstruct route: vehicle %d references unknown job %d",
				sr.Vehicle, step.Job,
			)
		}
		route.Points = append(route.Points, points[step.Job])
	}

	return route, nil
}

func capacityUnits(weightKg float64) int {
	return int(math.Ceil(weightKg / capacityUnitKg))
}
