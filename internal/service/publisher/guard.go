package publisher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/nordicpm/repokeeper/internal/logger"
)

// warnIfAnotherPublisherRunning scans the process table for another live
// process with the same executable name. The descriptor store takes no lock,
// so two publishers racing on one descriptor end with last writer wins; this
// only surfaces the situation, it does not prevent it.
func warnIfAnotherPublisherRunning(ctx context.Context) {
	processes, err := ps.Processes()
	if err != nil {
		logger.Debugf(ctx, "Process scan failed: %v", err)
		return
	}

	self := os.Getpid()
	executable := filepath.Base(os.Args[0])

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if process.Executable() != executable {
			continue
		}

		logger.WarnKV(ctx, "Another publisher appears to be running; concurrent updates end with last writer wins",
			"pid", process.Pid())

		return
	}
}
