package cleanup

import "time"

// ImageRecord is the catalog's view of one AMI at listing time. It is never
// mutated after the catalog returns it.
type ImageRecord struct {
	ID           string
	Name         string
	Region       string
	CreationDate time.Time // zero when the provider reported none
	Tags         map[string]string
	SnapshotIDs  []string
}

type ResourceKind string

const (
	ResourceImage    ResourceKind = "image"
	ResourceSnapshot ResourceKind = "snapshot"
)

// ResourceOutcome records one deregister or delete attempt.
type ResourceOutcome struct {
	Kind       ResourceKind
	Identifier string
	Region     string
	Succeeded  bool
	Reason     string // failure reason, empty on success
}

// RegionResult collects the outcomes of one region. Err carries a
// region-level failure (catalog listing unavailable); individual resource
// failures live in Outcomes.
type RegionResult struct {
	Region   string
	Err      string
	Outcomes []ResourceOutcome
}

// RunReport is everything one run produced, in policy region order.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Account    string
	DryRun     bool
	Results    []RegionResult
}

func (r *RunReport) ImagesRemoved() int {
	return r.countOutcomes(func(o ResourceOutcome) bool {
		return o.Kind == ResourceImage && o.Succeeded
	})
}

func (r *RunReport) SnapshotsRemoved() int {
	return r.countOutcomes(func(o ResourceOutcome) bool {
		return o.Kind == ResourceSnapshot && o.Succeeded
	})
}

func (r *RunReport) Failures() int {
	return r.countOutcomes(func(o ResourceOutcome) bool {
		return !o.Succeeded
	})
}

func (r *RunReport) countOutcomes(match func(ResourceOutcome) bool) int {
	count := 0
	for _, result := range r.Results {
		for _, outcome := range result.Outcomes {
			if match(outcome) {
				count++
			}
		}
	}
	return count
}

// RegionErrors lists the regions whose catalog could not even be listed.
func (r *RunReport) RegionErrors() []RegionResult {
	var failed []RegionResult
	for _, result := range r.Results {
		if result.Err != "" {
			failed = append(failed, result)
		}
	}
	return failed
}
