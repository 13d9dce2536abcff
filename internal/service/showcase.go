package service

import (
	"context"
	"fmt"

	"builderclub-backend/internal/cache"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/logger"
)

// OrgRepoLister lists an organization's public repositories.
type OrgRepoLister interface {
	ListOrgRepos(ctx context.Context, org string, limit int) ([]github.OrgRepo, error)
}

type repoShowcaseService struct {
	lister OrgRepoLister
	cache  *cache.Memo[[]github.OrgRepo]
	org    string
	limit  int
}

func NewRepoShowcaseService(lister OrgRepoLister, memo *cache.Memo[[]github.OrgRepo], org string, limit int) RepoShowcaseService {
	return &repoShowcaseService{lister: lister, cache: memo, org: org, limit: limit}
}

// ListOrgRepos serves the cached listing. Failures are not cached, so the
// next request retries the provider.
func (s *repoShowcaseService) ListOrgRepos(ctx context.Context) ([]github.OrgRepo, error) {
	repos, err := s.cache.Get(ctx, "org:"+s.org, func(ctx context.Context) ([]github.OrgRepo, error) {
		return s.lister.ListOrgRepos(ctx, s.org, s.limit)
	})
	if err != nil {
		logger.Error("GitHub repos fetch failed", "org", s.org, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return repos, nil
}
