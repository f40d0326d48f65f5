package aws

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/pelagos-io/remora/pkg/cleanup"
	"github.com/pelagos-io/remora/pkg/common"
)

// Client is the EC2-backed image catalog and remove capability. One EC2
// session per region, all sharing a single rate limiter so a large cleanup
// doesn't trip RequestLimitExceeded.
type Client struct {
	ec2Sessions map[string]*ec2.EC2
	tagFilters  []common.MyTag
	limiter     ratelimit.Limiter
}

func NewClient(regions []string, tagFilters []common.MyTag) *Client {
	ec2Sessions := make(map[string]*ec2.EC2, len(regions))
	for _, region := range regions {
		ec2Sessions[region] = ec2.New(CreateSession(region))
	}

	return &Client{
		ec2Sessions: ec2Sessions,
		tagFilters:  tagFilters,
		limiter:     ratelimit.New(5, ratelimit.Per(1*time.Second)),
	}
}

// ListImages returns the images owned by the account in the given region,
// narrowed server-side by the policy's tag filters.
func (c *Client) ListImages(region string) ([]cleanup.ImageRecord, error) {
	ec2Session, err := c.sessionFor(region)
	if err != nil {
		return nil, err
	}

	input := &ec2.DescribeImagesInput{
		Owners: []*string{aws.String("self")},
	}
	for _, filter := range c.tagFilters {
		input.Filters = append(input.Filters, &ec2.Filter{
			Name:   aws.String("tag:" + filter.Key),
			Values: []*string{aws.String(filter.Value)},
		})
	}

	result, err := ec2Session.DescribeImages(input)
	if err != nil {
		return nil, fmt.Errorf("can't get images in region %s: %s", region, err.Error())
	}

	records := make([]cleanup.ImageRecord, 0, len(result.Images))
	for _, image := range result.Images {
		records = append(records, imageRecord(region, image))
	}

	return records, nil
}

func (c *Client) DeregisterImage(region string, imageID string) error {
	ec2Session, err := c.sessionFor(region)
	if err != nil {
		return err
	}

	c.limiter.Take()
	_, err = ec2Session.DeregisterImage(&ec2.DeregisterImageInput{
		ImageId: aws.String(imageID),
	})
	return err
}

func (c *Client) DeleteSnapshot(region string, snapshotID string) error {
	ec2Session, err := c.sessionFor(region)
	if err != nil {
		return err
	}

	c.limiter.Take()
	_, err = ec2Session.DeleteSnapshot(&ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshotID),
	})
	return err
}

func (c *Client) sessionFor(region string) (*ec2.EC2, error) {
	ec2Session, ok := c.ec2Sessions[region]
	if !ok {
		return nil, fmt.Errorf("no session for region %s", region)
	}
	return ec2Session, nil
}

func imageRecord(region string, image *ec2.Image) cleanup.ImageRecord {
	record := cleanup.ImageRecord{
		ID:     aws.StringValue(image.ImageId),
		Name:   aws.StringValue(image.Name),
		Region: region,
		Tags:   common.TagMap(image.Tags),
	}

	if image.CreationDate != nil {
		creationDate, err := time.Parse(time.RFC3339, *image.CreationDate)
		if err != nil {
			// record keeps a zero creation date, which makes it ineligible
			log.Warnf("Can't parse creation date %q for image %s in %s: %s", *image.CreationDate, record.ID, region, err.Error())
		} else {
			record.CreationDate = creationDate
		}
	}

	for _, mapping := range image.BlockDeviceMappings {
		if mapping.Ebs != nil && mapping.Ebs.SnapshotId != nil {
			record.SnapshotIDs = append(record.SnapshotIDs, *mapping.Ebs.SnapshotId)
		}
	}

	return record
}
