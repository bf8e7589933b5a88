package partner

import (
	"context"
	"errors"
	"net/http"

	"adsync/internal/config/configs"
	"adsync/internal/core/domain"
)

// StaticCredentials serves the same configured partner account for every
// owner. It implements port.CredentialProvider.
type StaticCredentials struct {
	creds domain.Credentials
}

func NewStaticCredentials(partner configs.Partner, business configs.Business) *StaticCredentials {
	return &StaticCredentials{creds: domain.Credentials{
		Username:      partner.Username,
		Password:      partner.Password,
		BusinessToken: business.Token,
	}}
}

func (s *StaticCredentials) Credentials(_ context.Context, _ string) (domain.Credentials, error) {
	if s.creds.Username == "" {
		return domain.Credentials{}, &domain.UpstreamError{
			Op:         "resolve credentials",
			StatusCode: http.StatusUnauthorized,
			Err:        errors.New("no partner credentials configured"),
		}
	}
	return s.creds, nil
}
