package common

import (
	"log"
	"os"
)

// CheckEnvVars aborts the process when the AWS credentials environment is
// incomplete. Nothing has been touched cloud-side at this point.
func CheckEnvVars() {
	requiredEnvVars := []string{
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
	}

	for _, envVar := range requiredEnvVars {
		if _, ok := os.LookupEnv(envVar); !ok {
			log.Fatalf("%s environment variable is required and not found", envVar)
		}
	}
}
