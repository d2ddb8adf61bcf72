package utils

import "time"

// NowMillis returns the current wall-clock time in milliseconds since the
// epoch, the unit used for both local_modified and server timestamps.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
