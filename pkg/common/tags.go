package common

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/service/ec2"
)

type MyTag struct {
	Key   string
	Value string
}

// ParseTagList parses "key=value" entries. A bare "key" matches any value.
func ParseTagList(entries []string) ([]MyTag, error) {
	var tags []MyTag
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if parts[0] == "" {
			return nil, fmt.Errorf("tag entry %q has an empty key", entry)
		}
		tag := MyTag{Key: parts[0]}
		if len(parts) == 2 {
			tag.Value = parts[1]
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// TagMap converts EC2 tags to a plain map.
func TagMap(tags []*ec2.Tag) map[string]string {
	mapped := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			mapped[*tag.Key] = *tag.Value
		}
	}
	return mapped
}

// MatchesAny tells whether any rule matches the given tags. A rule with an
// empty value matches on key presence alone.
func MatchesAny(tags map[string]string, rules []MyTag) bool {
	for _, rule := range rules {
		value, ok := tags[rule.Key]
		if ok && (rule.Value == "" || rule.Value == value) {
			return true
		}
	}
	return false
}
