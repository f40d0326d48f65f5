package core

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pelagos-io/remora/pkg/aws"
	"github.com/pelagos-io/remora/pkg/cleanup"
	"github.com/pelagos-io/remora/pkg/common"
	"github.com/pelagos-io/remora/pkg/report"
)

// StartRun executes one complete cleanup run: validate configuration, sweep
// every configured region, then email the report. Configuration problems are
// fatal before any cloud call; once the run is underway, failures are
// captured in the report instead of stopping it.
func StartRun(cmd *cobra.Command, dryRun bool) {
	common.CheckEnvVars()

	policy, err := common.NewCleanupPolicy(cmd, dryRun)
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err.Error())
	}

	if policy.DryRun {
		log.Info("Dry run mode enabled")
	}

	client := aws.NewClient(policy.Regions, policy.TagFilters)

	var remover cleanup.Remover = client
	if policy.DryRun {
		remover = cleanup.DryRunRemover{}
	}

	runReport := cleanup.Run(client, remover, policy, time.Now())

	// report delivery goes through the first region's session, like the rest
	// of the account-level calls
	sess := aws.CreateSession(policy.Regions[0])

	account, err := aws.GetAccountID(sess)
	if err != nil {
		log.Warnf("Can't resolve the account ID: %s", err.Error())
	}
	runReport.Account = account

	log.Infof("Run complete: %d images removed, %d snapshots removed, %d failures.",
		runReport.ImagesRemoved(), runReport.SnapshotsRemoved(), runReport.Failures())
	for _, failed := range runReport.RegionErrors() {
		log.Errorf("Region %s could not be processed: %s", failed.Region, failed.Err)
	}

	if err := report.Deliver(report.NewSESMailer(sess), &runReport, policy); err != nil {
		log.Errorf("Can't deliver the report: %s", err.Error())
		return
	}

	log.Infof("Report sent to %d recipient(s).", len(policy.Recipients))
}
