// Command hrms runs the internship administration API and its CLI helpers.
package main

import (
	"os"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
