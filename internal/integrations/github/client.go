package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"builderclub-backend/internal/integrations"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"
	"builderclub-backend/internal/utils"

	gh "github.com/google/go-github/v69/github"
	"golang.org/x/sync/errgroup"
)

const provider = "github"

var (
	ErrRepoNotFound = errors.New("repository not found or is private")
	ErrRepoPrivate  = errors.New("repository is private")
)

// Validation is the metadata snapshot taken when a repository is submitted.
type Validation struct {
	Owner          string    `json:"owner"`
	Repo           string    `json:"repo"`
	SuggestedTitle string    `json:"suggestedTitle"`
	Language       *string   `json:"language"`
	Stars          int       `json:"stars"`
	LastCommit     time.Time `json:"lastCommit"`
	ReadmeExcerpt  string    `json:"readmeExcerpt"`
}

// OrgRepo is one entry of the organization repository listing.
type OrgRepo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	Language        *string   `json:"language"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
}

type Client struct {
	api    *gh.Client
	repos  *integrations.Breaker[*gh.Repository]
	readme *integrations.Breaker[string]
	list   *integrations.Breaker[[]*gh.Repository]
}

// NewClient builds a GitHub client. An empty token makes anonymous requests;
// baseURL overrides the API root (GitHub Enterprise or tests).
func NewClient(token, baseURL string, httpClient *http.Client) (*Client, error) {
	api := gh.NewClient(httpClient)
	if token != "" {
		api = api.WithAuthToken(token)
	}
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		api.BaseURL = u
	}

	return &Client{
		api:    api,
		repos:  integrations.NewBreaker[*gh.Repository]("github-repos", expectedMiss),
		readme: integrations.NewBreaker[string]("github-readme", expectedMiss),
		list:   integrations.NewBreaker[[]*gh.Repository]("github-org", nil),
	}, nil
}

// Validate fetches the repository and its README in parallel. A missing
// README yields an empty excerpt.
func (c *Client) Validate(ctx context.Context, ref utils.RepoRef) (*Validation, error) {
	logger.ExternalServiceCall(provider, "Validate", "owner", ref.Owner, "repo", ref.Repo)

	var (
		repo   *gh.Repository
		readme string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.getRepository(gctx, ref)
		repo = r
		return err
	})
	g.Go(func() error {
		readme = c.getReadme(gctx, ref)
		return nil
	})
	err := g.Wait()
	metrics.RecordUpstream(provider, "validate", err)
	logger.ExternalServiceResult(provider, "Validate", err)
	if err != nil {
		return nil, err
	}

	if repo.GetPrivate() {
		return nil, ErrRepoPrivate
	}

	v := &Validation{
		Owner:          ref.Owner,
		Repo:           ref.Repo,
		SuggestedTitle: utils.SuggestTitle(repo.GetName()),
		Language:       repo.Language,
		Stars:          repo.GetStargazersCount(),
		LastCommit:     repo.GetPushedAt().Time,
		ReadmeExcerpt:  utils.ReadmeExcerpt(readme),
	}
	return v, nil
}

func (c *Client) getRepository(ctx context.Context, ref utils.RepoRef) (*gh.Repository, error) {
	repo, err := c.repos.Execute(func() (*gh.Repository, error) {
		r, resp, err := c.api.Repositories.Get(ctx, ref.Owner, ref.Repo)
		return r, classify(resp, err)
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (c *Client) getReadme(ctx context.Context, ref utils.RepoRef) string {
	text, err := c.readme.Execute(func() (string, error) {
		content, resp, err := c.api.Repositories.GetReadme(ctx, ref.Owner, ref.Repo, nil)
		if err != nil {
			return "", classify(resp, err)
		}
		return content.GetContent()
	})
	if err != nil {
		if !errors.Is(err, ErrRepoNotFound) {
			logger.Warn("Failed to fetch README", "owner", ref.Owner, "repo", ref.Repo, "error", err)
		}
		return ""
	}
	return text
}

// ListOrgRepos returns the most recently updated public repositories of org.
func (c *Client) ListOrgRepos(ctx context.Context, org string, limit int) ([]OrgRepo, error) {
	logger.ExternalServiceCall(provider, "ListOrgRepos", "org", org, "limit", limit)

	repos, err := c.list.Execute(func() ([]*gh.Repository, error) {
		opts := &gh.RepositoryListByOrgOptions{
			Type:        "public",
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: limit},
		}
		r, resp, err := c.api.Repositories.ListByOrg(ctx, org, opts)
		return r, classify(resp, err)
	})
	metrics.RecordUpstream(provider, "list_org_repos", err)
	logger.ExternalServiceResult(provider, "ListOrgRepos", err, "count", len(repos))
	if err != nil {
		return nil, err
	}

	out := make([]OrgRepo, 0, len(repos))
	for _, r := range repos {
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		out = append(out, OrgRepo{
			ID:              r.GetID(),
			Name:            r.GetName(),
			Description:     r.Description,
			HTMLURL:         r.GetHTMLURL(),
			StargazersCount: r.GetStargazersCount(),
			Language:        r.Language,
			UpdatedAt:       r.GetUpdatedAt().Time,
			Topics:          topics,
		})
	}
	return out, nil
}

// classify turns go-github errors into ErrRepoNotFound or an UpstreamError
// carrying the response status. Transport failures keep status 0.
func classify(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		status = errResp.Response.StatusCode
	}
	if status == http.StatusNotFound {
		return ErrRepoNotFound
	}
	return &integrations.UpstreamError{Provider: provider, Status: status, Err: err}
}

func expectedMiss(err error) bool {
	return err == nil || errors.Is(err, ErrRepoNotFound)
}
