package nameres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
)

// HealthStatus reports the reachability of Solr and the optional cache.
type HealthStatus struct {
	Healthy bool
	Checks  map[string]string
}

// Health pings every configured dependency.
func (c *Client) Health(ctx context.Context) HealthStatus {
	rep := c.health.Check(ctx)
	checks := make(map[string]string, len(rep.Checks))
	for k, v := range rep.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Healthy: rep.Status == healthuc.Healthy,
		Checks:  checks,
	}
}

// Ping returns an error when Solr or the cache is unreachable.
func (c *Client) Ping(ctx context.Context) error {
	h := c.Health(ctx)
	if h.Healthy {
		return nil
	}
	var failed []string
	for name, res := range h.Checks {
		if res != string(healthuc.CheckOK) {
			failed = append(failed, name)
		}
	}
	slices.Sort(failed)
	return fmt.Errorf("nameres: unreachable: %s", strings.Join(failed, ", "))
}
