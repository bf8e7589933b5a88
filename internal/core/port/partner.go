package port

import (
	"context"

	"adsync/internal/core/domain"
)

// PageFetcher retrieves one page of programs from the partner API. It is
// stateless and safe to call concurrently with different offsets. Failures
// are reported as *domain.UpstreamError.
type PageFetcher interface {
	FetchPage(ctx context.Context, creds domain.Credentials, req domain.PageRequest) (domain.Page, error)
}

// BusinessFetcher retrieves a business from the partner business API. A
// missing business yields an error wrapping domain.ErrBusinessNotFound.
type BusinessFetcher interface {
	FetchBusiness(ctx context.Context, creds domain.Credentials, businessID string) (domain.BusinessInfo, error)
}

// CredentialProvider resolves the partner credentials of an owner.
type CredentialProvider interface {
	Credentials(ctx context.Context, owner string) (domain.Credentials, error)
}
