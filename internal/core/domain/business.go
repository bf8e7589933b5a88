package domain

import "time"

// Business is a partner business referenced by programs. It is shared by all
// owners and cached locally once fetched.
type Business struct {
	BusinessID  string
	Name        *string
	URL         *string
	Alias       *string
	FetchFailed bool
	CachedAt    time.Time
}

// Info returns the display attributes of b.
func (b Business) Info() BusinessInfo {
	var info BusinessInfo
	if b.Name != nil {
		info.Name = *b.Name
	}
	if b.URL != nil {
		info.URL = *b.URL
	}
	if b.Alias != nil {
		info.Alias = *b.Alias
	}
	return info
}

// BusinessInfo holds the display attributes returned by the business API.
type BusinessInfo struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Alias string `json:"alias,omitempty"`
}
