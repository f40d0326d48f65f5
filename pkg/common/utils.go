package common

import "fmt"

func ElemToDeleteFormattedInfos(elemName string, arraySize int, region string) (string, string) {
	count := fmt.Sprintf("There is no %s to delete in region %s.", elemName, region)
	if arraySize == 1 {
		count = fmt.Sprintf("There is 1 %s to delete in region %s.", elemName, region)
	}
	if arraySize > 1 {
		count = fmt.Sprintf("There are %d %ss to delete in region %s.", arraySize, elemName, region)
	}

	start := fmt.Sprintf("Starting %s deletion in region %s.", elemName, region)

	return count, start
}
