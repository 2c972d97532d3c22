package feedcache

import (
	"fmt"
)

// FetchError reports a failed snapshot fetch. The snapshot pass is abandoned
// without retry; affected keys stay absent until the feed delivers them.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feedcache: snapshot fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StreamError reports a failure on the update feed: either opening the
// subscription, or a single failed element. A failed element is dropped and
// the feed keeps going; a failed subscription ends the streamer.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("feedcache: update stream failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
