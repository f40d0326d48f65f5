package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageWithSnapshots(snapshots ...string) ImageRecord {
	return ImageRecord{
		ID:          "ami-1",
		Region:      "us-east-1",
		SnapshotIDs: snapshots,
	}
}

func TestRemoveImageAndSnapshotsAllSucceed(t *testing.T) {
	remover := &fakeRemover{}
	outcomes := RemoveImageAndSnapshots(remover, imageWithSnapshots("snap-1", "snap-2"))

	require.Len(t, outcomes, 3)
	assert.Equal(t, ResourceImage, outcomes[0].Kind)
	assert.Equal(t, "ami-1", outcomes[0].Identifier)
	assert.Equal(t, ResourceSnapshot, outcomes[1].Kind)
	assert.Equal(t, "snap-1", outcomes[1].Identifier)
	assert.Equal(t, "snap-2", outcomes[2].Identifier)
	for _, outcome := range outcomes {
		assert.True(t, outcome.Succeeded)
		assert.Empty(t, outcome.Reason)
		assert.Equal(t, "us-east-1", outcome.Region)
	}
}

func TestRemoveImageAndSnapshotsImageFirst(t *testing.T) {
	remover := &fakeRemover{}
	RemoveImageAndSnapshots(remover, imageWithSnapshots("snap-1"))

	calls := remover.callList()
	require.Len(t, calls, 2)
	assert.Equal(t, "deregister us-east-1 ami-1", calls[0])
	assert.Equal(t, "delete us-east-1 snap-1", calls[1])
}

func TestRemoveImageAndSnapshotsDeregistrationFails(t *testing.T) {
	remover := &fakeRemover{failImages: map[string]string{"ami-1": "image in use"}}
	outcomes := RemoveImageAndSnapshots(remover, imageWithSnapshots("snap-1", "snap-2"))

	// every snapshot still gets its own attempt and outcome
	require.Len(t, outcomes, 3)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "image in use", outcomes[0].Reason)
	assert.True(t, outcomes[1].Succeeded)
	assert.True(t, outcomes[2].Succeeded)
	assert.Contains(t, remover.callList(), "delete us-east-1 snap-1")
	assert.Contains(t, remover.callList(), "delete us-east-1 snap-2")
}

func TestRemoveImageAndSnapshotsSingleSnapshotFails(t *testing.T) {
	remover := &fakeRemover{failSnapshots: map[string]string{"snap-2": "snapshot is in use"}}
	outcomes := RemoveImageAndSnapshots(remover, imageWithSnapshots("snap-1", "snap-2"))

	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Succeeded)
	assert.True(t, outcomes[1].Succeeded)
	assert.False(t, outcomes[2].Succeeded)
	assert.Equal(t, "snapshot is in use", outcomes[2].Reason)
}

func TestRemoveImageWithoutSnapshots(t *testing.T) {
	remover := &fakeRemover{}
	outcomes := RemoveImageAndSnapshots(remover, imageWithSnapshots())

	require.Len(t, outcomes, 1)
	assert.Equal(t, ResourceImage, outcomes[0].Kind)
}

func TestDryRunRemoverNeverFails(t *testing.T) {
	remover := DryRunRemover{}

	assert.NoError(t, remover.DeregisterImage("us-east-1", "ami-1"))
	assert.NoError(t, remover.DeleteSnapshot("us-east-1", "snap-1"))
}
