package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

type optimizationRequest struct {
	Jobs     []ports.Job         `json:"jobs"`
	Vehicles []ports.VehicleSpec `json:"vehicles"`
	Geometry bool                `json:"geometry"`
}

type optimizationResponse struct {
	Code   int                 `json:"code"`
	Error  string              `json:"error"`
	Routes []ports.SolvedRoute `json:"routes"`
}

// Solve submits jobs and vehicles to the ORS optimization endpoint and
// returns the solved routes with path geometry.
func (c *Client) Solve(
	ctx context.Context,
	jobs []ports.Job,
	vehicles []ports.VehicleSpec,
) (_ []ports.SolvedRoute, err error) {
	defer obs.Time(ctx, "ors.optimization")(&err)

	endpoint := c.baseURL + "/optimization"

	payload, err := json.Marshal(optimizationRequest{
		Jobs:     jobs,
		Vehicles: vehicles,
		Geometry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal optimization request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("optimization request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded optimizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode optimization response: %w", err)
	}

	if decoded.Code != 0 {
		return nil, fmt.Errorf("optimization solver code %d: %s", decoded.Code, decoded.Error)
	}

	return decoded.Routes, nil
}
