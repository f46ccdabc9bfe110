package batch

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// Batch batches up values from a channel. A batch is released whenever maxItems values have been received or
// maxTimeout has elapsed since the previous batch was started (whichever occurs first). The output channel is
// closed once values is closed and the last batch has been delivered, or when ctx is cancelled.
func Batch[T any](ctx context.Context, values <-chan T, maxItems int, maxTimeout time.Duration, bufferSize int, clock clock.Clock) <-chan []T {
	out := make(chan []T, bufferSize)

	go func() {
		defer close(out)

		for keepGoing := true; keepGoing; {
			var batch []T
			expire := clock.After(maxTimeout)
		collect:
			for {
				select {
				case value, ok := <-values:
					if !ok {
						keepGoing = false
						break collect
					}
					batch = append(batch, value)
					if len(batch) == maxItems {
						break collect
					}
				case <-expire:
					break collect
				case <-ctx.Done():
					return
				}
			}

			if len(batch) > 0 {
				select {
				case out <- batch:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
