package cleanup

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pelagos-io/remora/pkg/common"
)

// Run fans ProcessRegion out across the configured regions and merges the
// results. Each goroutine writes only its own slot, so the merge needs no
// locking; the report keeps the policy's region order.
func Run(catalog Catalog, remover Remover, policy common.CleanupPolicy, now time.Time) RunReport {
	report := RunReport{
		StartedAt: now,
		DryRun:    policy.DryRun,
		Results:   make([]RegionResult, len(policy.Regions)),
	}

	var wg sync.WaitGroup
	for i, region := range policy.Regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			log.Infof("Starting to check stale images in region %s.", region)
			report.Results[i] = ProcessRegion(catalog, remover, region, policy, now)
		}(i, region)
	}
	wg.Wait()

	report.FinishedAt = time.Now()
	return report
}
