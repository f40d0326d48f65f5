package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CleanupPolicy holds everything a run needs to decide what to remove and
// where to send the report. It is built once at startup and read-only
// afterwards; no component reads ambient configuration state.
type CleanupPolicy struct {
	Regions      []string
	MaxAge       time.Duration
	TagFilters   []MyTag
	ExcludedTags []MyTag
	Sender       string
	Recipients   []string
	DryRun       bool
}

// NewCleanupPolicy builds the policy from command flags, falling back to the
// environment (AWS_REGIONS, SENDER_EMAIL, RECIPIENT_EMAILS) for options the
// flags left empty.
func NewCleanupPolicy(cmd *cobra.Command, dryRun bool) (CleanupPolicy, error) {
	regions, _ := cmd.Flags().GetStringSlice("aws-regions")
	if len(regions) == 0 {
		regions = splitList(viper.GetString("aws_regions"))
	}

	maxAge, _ := cmd.Flags().GetDuration("max-age")

	sender, _ := cmd.Flags().GetString("sender")
	if sender == "" {
		sender = viper.GetString("sender_email")
	}

	recipients, _ := cmd.Flags().GetStringSlice("recipients")
	if len(recipients) == 0 {
		recipients = splitList(viper.GetString("recipient_emails"))
	}

	rawFilters, _ := cmd.Flags().GetStringSlice("tag-filters")
	tagFilters, err := ParseTagList(rawFilters)
	if err != nil {
		return CleanupPolicy{}, fmt.Errorf("invalid tag-filters: %s", err.Error())
	}

	rawExcluded, _ := cmd.Flags().GetStringSlice("excluded-tags")
	excludedTags, err := ParseTagList(rawExcluded)
	if err != nil {
		return CleanupPolicy{}, fmt.Errorf("invalid excluded-tags: %s", err.Error())
	}

	policy := CleanupPolicy{
		Regions:      regions,
		MaxAge:       maxAge,
		TagFilters:   tagFilters,
		ExcludedTags: excludedTags,
		Sender:       sender,
		Recipients:   recipients,
		DryRun:       dryRun,
	}

	return policy, policy.Validate()
}

// Validate reports the first missing required option. A policy that does not
// validate must abort the process before any cloud call.
func (p CleanupPolicy) Validate() error {
	if len(p.Regions) == 0 {
		return errors.New("at least one region is required")
	}
	if p.MaxAge <= 0 {
		return errors.New("max-age must be a positive duration")
	}
	if p.Sender == "" {
		return errors.New("sender email address is required")
	}
	if len(p.Recipients) == 0 {
		return errors.New("at least one recipient email address is required")
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
