package cleanup

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelagos-io/remora/pkg/common"
)

var runNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func runPolicy(regions ...string) common.CleanupPolicy {
	return common.CleanupPolicy{
		Regions: regions,
		MaxAge:  30 * 24 * time.Hour,
	}
}

func staleImageIn(region string, id string, snapshots ...string) ImageRecord {
	return ImageRecord{
		ID:           id,
		Region:       region,
		CreationDate: runNow.Add(-45 * 24 * time.Hour),
		SnapshotIDs:  snapshots,
	}
}

func TestRunHappyPath(t *testing.T) {
	catalog := &fakeCatalog{images: map[string][]ImageRecord{
		"us-east-1": {staleImageIn("us-east-1", "ami-1", "snap-1", "snap-2")},
	}}

	report := Run(catalog, &fakeRemover{}, runPolicy("us-east-1"), runNow)

	assert.Equal(t, 1, report.ImagesRemoved())
	assert.Equal(t, 2, report.SnapshotsRemoved())
	assert.Equal(t, 0, report.Failures())
	assert.Empty(t, report.RegionErrors())
	assert.Equal(t, runNow, report.StartedAt)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestRunSnapshotFailureIsReportedNotFatal(t *testing.T) {
	catalog := &fakeCatalog{images: map[string][]ImageRecord{
		"us-east-1": {staleImageIn("us-east-1", "ami-1", "snap-1", "snap-2")},
	}}
	remover := &fakeRemover{failSnapshots: map[string]string{"snap-2": "still referenced"}}

	report := Run(catalog, remover, runPolicy("us-east-1"), runNow)

	assert.Equal(t, 1, report.ImagesRemoved())
	assert.Equal(t, 1, report.SnapshotsRemoved())
	assert.Equal(t, 1, report.Failures())

	require.Len(t, report.Results, 1)
	last := report.Results[0].Outcomes[2]
	assert.Equal(t, "snap-2", last.Identifier)
	assert.Equal(t, "still referenced", last.Reason)
}

func TestRunRegionIsolation(t *testing.T) {
	images := map[string][]ImageRecord{
		"us-east-1": {staleImageIn("us-east-1", "ami-1", "snap-1")},
	}

	healthy := Run(&fakeCatalog{images: images}, &fakeRemover{}, runPolicy("us-east-1", "us-west-2"), runNow)

	broken := Run(&fakeCatalog{
		images: images,
		errs:   map[string]error{"us-west-2": errors.New("listing unavailable")},
	}, &fakeRemover{}, runPolicy("us-east-1", "us-west-2"), runNow)

	// a dead region must not change what happened in the healthy one
	assert.Equal(t, healthy.Results[0].Outcomes, broken.Results[0].Outcomes)

	require.Len(t, broken.Results, 2)
	assert.Equal(t, "us-west-2", broken.Results[1].Region)
	assert.Equal(t, "listing unavailable", broken.Results[1].Err)
	require.Len(t, broken.RegionErrors(), 1)
}

func TestRunResultsKeepPolicyOrder(t *testing.T) {
	regions := []string{"eu-west-3", "us-east-1", "ap-southeast-2"}
	report := Run(&fakeCatalog{}, &fakeRemover{}, runPolicy(regions...), runNow)

	require.Len(t, report.Results, 3)
	for i, region := range regions {
		assert.Equal(t, region, report.Results[i].Region)
	}
}

func TestRunTotalsMatchOutcomes(t *testing.T) {
	catalog := &fakeCatalog{images: map[string][]ImageRecord{
		"us-east-1": {
			staleImageIn("us-east-1", "ami-1", "snap-1a"),
			staleImageIn("us-east-1", "ami-2"),
		},
		"us-west-2": {staleImageIn("us-west-2", "ami-3", "snap-3a", "snap-3b")},
	}}
	remover := &fakeRemover{
		failImages:    map[string]string{"ami-2": "in use"},
		failSnapshots: map[string]string{"snap-3b": "still referenced"},
	}

	report := Run(catalog, remover, runPolicy("us-east-1", "us-west-2"), runNow)

	succeededImages, succeededSnapshots, failures := 0, 0, 0
	for _, result := range report.Results {
		for _, outcome := range result.Outcomes {
			switch {
			case !outcome.Succeeded:
				failures++
			case outcome.Kind == ResourceImage:
				succeededImages++
			default:
				succeededSnapshots++
			}
		}
	}

	assert.Equal(t, succeededImages, report.ImagesRemoved())
	assert.Equal(t, succeededSnapshots, report.SnapshotsRemoved())
	assert.Equal(t, failures, report.Failures())
	assert.Equal(t, 2, report.Failures())
}

func TestRunDryRun(t *testing.T) {
	catalog := &fakeCatalog{images: map[string][]ImageRecord{
		"us-east-1": {staleImageIn("us-east-1", "ami-1", "snap-1")},
	}}
	policy := runPolicy("us-east-1")
	policy.DryRun = true

	report := Run(catalog, DryRunRemover{}, policy, runNow)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.ImagesRemoved())
	assert.Equal(t, 1, report.SnapshotsRemoved())
	assert.Equal(t, 0, report.Failures())
}
