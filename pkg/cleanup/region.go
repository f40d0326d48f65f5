package cleanup

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pelagos-io/remora/pkg/common"
)

// Catalog lists the images owned by the account in one region.
type Catalog interface {
	ListImages(region string) ([]ImageRecord, error)
}

// ProcessRegion runs the list → evaluate → remove pipeline for one region.
// A listing failure marks the whole region as failed; other regions are not
// its business. Ineligible images are skipped without an outcome, and each
// eligible image is removed independently of its siblings.
func ProcessRegion(catalog Catalog, remover Remover, region string, policy common.CleanupPolicy, now time.Time) RegionResult {
	result := RegionResult{Region: region}

	images, err := catalog.ListImages(region)
	if err != nil {
		log.Errorf("Can't list images in region %s: %s", region, err.Error())
		result.Err = err.Error()
		return result
	}

	var eligible []ImageRecord
	for _, image := range images {
		if IsEligible(image, policy, now) {
			eligible = append(eligible, image)
		} else {
			log.Debugf("Skipping image %s in region %s.", image.ID, region)
		}
	}

	count, start := common.ElemToDeleteFormattedInfos("stale AMI", len(eligible), region)

	log.Info(count)

	if len(eligible) == 0 {
		return result
	}

	log.Info(start)

	for _, image := range eligible {
		result.Outcomes = append(result.Outcomes, RemoveImageAndSnapshots(remover, image)...)
	}

	return result
}
