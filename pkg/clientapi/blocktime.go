package clientapi

import (
	"time"

	"github.com/pkg/errors"
)

// BlockTimeSample is the result of sampling the chain head twice.
type BlockTimeSample struct {
	AvgBlockTime   float64 // seconds per block over the sample window
	ElapsedSeconds float64
	BlockDiff      int64
}

// SampleBlockTime measures the average block time by reading the chain head
// twice with a wait in between. The wait honors the client context so a
// SIGINT does not hang the run.
func (c *APIClient) SampleBlockTime(wait time.Duration) (BlockTimeSample, error) {
	height1, time1, err := c.BlockHeightAndTime()
	if err != nil {
		return BlockTimeSample{}, errors.Wrap(err, "unable to take first block sample")
	}
	log.Infof("block sample 1: height %d at %s, waiting %s for the second sample", height1, time1.Format(time.RFC3339), wait)

	select {
	case <-time.After(wait):
	case <-c.ctx.Done():
		return BlockTimeSample{}, c.ctx.Err()
	}

	height2, time2, err := c.BlockHeightAndTime()
	if err != nil {
		return BlockTimeSample{}, errors.Wrap(err, "unable to take second block sample")
	}
	log.Infof("block sample 2: height %d at %s", height2, time2.Format(time.RFC3339))

	blockDiff := height2 - height1
	if blockDiff <= 0 {
		return BlockTimeSample{}, errors.Errorf("no new blocks produced during the %s sample window", wait)
	}
	elapsed := time2.Sub(time1).Seconds()

	return BlockTimeSample{
		AvgBlockTime:   elapsed / float64(blockDiff),
		ElapsedSeconds: elapsed,
		BlockDiff:      blockDiff,
	}, nil
}
