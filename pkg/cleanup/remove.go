package cleanup

import (
	log "github.com/sirupsen/logrus"
)

// Remover is the provider capability used to take resources away.
// Implementations must not retry; a failed call is reported as-is.
type Remover interface {
	DeregisterImage(region string, imageID string) error
	DeleteSnapshot(region string, snapshotID string) error
}

// RemoveImageAndSnapshots deregisters the image and then deletes each of its
// snapshots, producing one outcome per resource. The image goes first: the
// provider refuses to delete a snapshot still referenced by a registered
// image. Every snapshot is attempted even when the deregistration failed,
// since a snapshot deletion rejected for that reason is an expected,
// reported failure rather than something to hide.
func RemoveImageAndSnapshots(remover Remover, image ImageRecord) []ResourceOutcome {
	outcomes := make([]ResourceOutcome, 0, len(image.SnapshotIDs)+1)

	imageOutcome := ResourceOutcome{
		Kind:       ResourceImage,
		Identifier: image.ID,
		Region:     image.Region,
		Succeeded:  true,
	}
	if err := remover.DeregisterImage(image.Region, image.ID); err != nil {
		log.Errorf("Can't deregister image %s in %s: %s", image.ID, image.Region, err.Error())
		imageOutcome.Succeeded = false
		imageOutcome.Reason = err.Error()
	} else {
		log.Debugf("Image %s in %s deregistered.", image.ID, image.Region)
	}
	outcomes = append(outcomes, imageOutcome)

	for _, snapshotID := range image.SnapshotIDs {
		snapshotOutcome := ResourceOutcome{
			Kind:       ResourceSnapshot,
			Identifier: snapshotID,
			Region:     image.Region,
			Succeeded:  true,
		}
		if err := remover.DeleteSnapshot(image.Region, snapshotID); err != nil {
			log.Errorf("Can't delete snapshot %s in %s: %s", snapshotID, image.Region, err.Error())
			snapshotOutcome.Succeeded = false
			snapshotOutcome.Reason = err.Error()
		} else {
			log.Debugf("Snapshot %s in %s deleted.", snapshotID, image.Region)
		}
		outcomes = append(outcomes, snapshotOutcome)
	}

	return outcomes
}

// DryRunRemover satisfies Remover without touching anything, so a dry run
// reports exactly what a real run would attempt.
type DryRunRemover struct{}

func (DryRunRemover) DeregisterImage(region string, imageID string) error {
	log.Infof("Image %s in %s would be deregistered.", imageID, region)
	return nil
}

func (DryRunRemover) DeleteSnapshot(region string, snapshotID string) error {
	log.Infof("Snapshot %s in %s would be deleted.", snapshotID, region)
	return nil
}
