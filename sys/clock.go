// Package sys includes constants and types used by both public and internal APIs.
package sys

import "context"

// Nanotime returns nanoseconds since an arbitrary start point, used to measure
// elapsed time. This is sometimes called ticks or monotonic time.
//
// Exposure of this to the harness is controlled by HarnessConfig.WithNanotime.
// Only the difference between two readings is meaningful.
type Nanotime func(ctx context.Context) int64
