package ports

import (
	"context"

	"TransientLoader/internal/domain"
)

// PageFetcher retrieves report HTML from the observatory server.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// FileFetcher downloads a single artifact to a local path.
type FileFetcher interface {
	DownloadFile(ctx context.Context, url, dest string) error
}

// TransientRepository persists transient records and answers the
// idempotency question before any network work starts.
type TransientRepository interface {
	Status(ctx context.Context, id string) (domain.Status, error)
	Insert(ctx context.Context, rec domain.TransientRecord) error
	Update(ctx context.Context, rec domain.TransientRecord) error
}

// ArtifactStore owns the on-disk layout for downloaded images and the
// metadata sidecar.
type ArtifactStore interface {
	EnsureDir(rec domain.TransientRecord) (string, error)
	WriteSidecar(rec domain.TransientRecord) error
}

// ObservatoryResolver maps a report URL to the configured observatory id.
type ObservatoryResolver interface {
	Resolve(reportURL string) (string, error)
}
