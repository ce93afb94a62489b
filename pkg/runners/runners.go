// Package runners looks up the self-hosted runners registered to a
// repository so their labels can extend the runner allowlist.
package runners

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/repoutil"
	"github.com/githubnext/runner-guard/pkg/sliceutil"
)

var log = logger.New("runners:runners")

// pageSize is the largest page the runners endpoint serves.
const pageSize = 100

// RESTClient is the subset of the go-gh REST client used here.
type RESTClient interface {
	DoWithContext(ctx context.Context, method string, path string, body io.Reader, response any) error
}

// Label is a label attached to a runner.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Runner is a self-hosted runner registered to a repository.
type Runner struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	OS     string  `json:"os"`
	Status string  `json:"status"`
	Busy   bool    `json:"busy"`
	Labels []Label `json:"labels"`
}

type runnersResponse struct {
	TotalCount int      `json:"total_count"`
	Runners    []Runner `json:"runners"`
}

// NewClient creates a REST client authenticated the way the gh CLI is
// (GH_TOKEN, GITHUB_TOKEN or gh auth).
func NewClient() (RESTClient, error) {
	client, err := api.NewRESTClient(api.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

// List returns every self-hosted runner registered to repoRef, which is an
// owner/repo slug or a GitHub URL.
func List(ctx context.Context, client RESTClient, repoRef string) ([]Runner, error) {
	owner, repo, err := repoutil.ParseRepoRef(repoRef)
	if err != nil {
		return nil, err
	}

	var all []Runner
	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/actions/runners?per_page=%d&page=%d", owner, repo, pageSize, page)
		log.Printf("Fetching %s", path)

		var resp runnersResponse
		if err := client.DoWithContext(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list runners for %s/%s: %w", owner, repo, err)
		}
		all = append(all, resp.Runners...)

		if len(resp.Runners) == 0 || len(all) >= resp.TotalCount {
			break
		}
	}

	log.Printf("Found %d runners for %s/%s", len(all), owner, repo)
	return all, nil
}

// FetchLabels returns the distinct label names of the runners registered to
// repoRef, in the order the API lists them.
func FetchLabels(ctx context.Context, client RESTClient, repoRef string) ([]string, error) {
	registered, err := List(ctx, client, repoRef)
	if err != nil {
		return nil, err
	}
	return Labels(registered), nil
}

// Labels returns the distinct label names of runners.
func Labels(runners []Runner) []string {
	var names []string
	for _, runner := range runners {
		for _, label := range runner.Labels {
			names = append(names, label.Name)
		}
	}
	return sliceutil.Deduplicate(names)
}
