package audit

import "context"

// Store is ordered append-only persistence for audit entries. List must
// observe a consistent prefix of appends, never a partial entry. The memory
// implementation is the reference; redis and postgres implementations are
// drop-in durable collaborators.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}
