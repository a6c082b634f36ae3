package client

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/colare/recruit/pkg/domain"
)

const (
	defaultCompanyName = "Company"
	defaultDisplayName = "User"
	defaultEmail       = "unknown@colare.co"

	profileCacheKey = "profile"
)

// ProfileSource fetches the company profile.
type ProfileSource interface {
	GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error)
}

// CachedProfiles memoizes the company profile for a few minutes so that the
// header and the tests list do not refetch it on every view switch.
type CachedProfiles struct {
	src   ProfileSource
	cache *gocache.Cache
}

// NewCachedProfiles wraps src with a 5 minute cache.
func NewCachedProfiles(src ProfileSource) *CachedProfiles {
	return &CachedProfiles{src: src, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

// GetCompanyProfile returns the cached profile, fetching it when absent or expired.
func (c *CachedProfiles) GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	if cached, found := c.cache.Get(profileCacheKey); found {
		return cached.(*domain.CompanyProfile), nil
	}
	profile, err := c.src.GetCompanyProfile(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(profileCacheKey, profile)
	return profile, nil
}

// Invalidate drops the cached profile.
func (c *CachedProfiles) Invalidate() {
	c.cache.Delete(profileCacheKey)
}

// ResolveUserContext combines the locally stored user with the company name
// from the profile endpoint. A failing profile fetch keeps the fallback name.
func ResolveUserContext(ctx context.Context, src ProfileSource, local *domain.LocalUser) domain.UserContext {
	companyName := defaultCompanyName
	if src != nil {
		profile, err := src.GetCompanyProfile(ctx)
		if err != nil {
			log.WithError(err).Debug("company profile unavailable, using fallback name")
		} else if profile != nil && profile.Company != nil {
			if name := strings.TrimSpace(profile.Company.Name); name != "" {
				companyName = name
			}
		}
	}

	var first, last, email string
	if local != nil {
		first = strings.TrimSpace(local.FirstName)
		last = strings.TrimSpace(local.LastName)
		email = local.Email
	}

	displayName := strings.TrimSpace(first + " " + last)
	if displayName == "" {
		displayName = email
	}
	if displayName == "" {
		displayName = defaultDisplayName
	}
	if email == "" {
		email = defaultEmail
	}

	return domain.UserContext{
		DisplayName: displayName,
		Email:       email,
		CompanyName: companyName,
	}
}
