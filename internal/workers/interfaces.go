// Package workers provides abstractions for managing and running background
// workers. It defines the Worker interface and a Workers aggregate that runs
// multiple workers in a unified way.
package workers

import "context"

// Worker is implemented by any long-running background process (for example
// the storage server's write-back flusher). Run blocks until ctx is
// cancelled.
type Worker interface {
	Run(ctx context.Context)
}
