package template

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/pkg/gitcmd"
)

// AnalysisFiles is the fixed allow-list fetched for candidate inspection:
// build manifests, package manifests, and the readme.
var AnalysisFiles = []string{"pom.xml", "package.json", "build.gradle", "README.md"}

// Fetcher performs ad-hoc, cache-bypassing retrieval of the analysis
// allow-list from an arbitrary repository. Every call works in a disposable
// directory that is removed on all exit paths; nothing is ever persisted.
type Fetcher struct {
	git    gitcmd.Runner
	logger *log.Logger
}

// NewFetcher creates an ad-hoc fetcher. A nil runner falls back to the git
// CLI; a nil logger falls back to the default logger.
func NewFetcher(git gitcmd.Runner, logger *log.Logger) *Fetcher {
	if git == nil {
		git = gitcmd.NewCLI()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{git: git, logger: logger}
}

// FetchFiles retrieves the analysis allow-list from repoURL at ref ("HEAD"
// when empty) using a sparse, depth-1 transfer. The result maps filename to
// content for files that exist; absent files are omitted, never empty.
//
// This call is advisory: on any failure (bad URL, private or missing
// repository, network error) it logs and returns an empty map rather than
// propagating an error.
func (f *Fetcher) FetchFiles(ctx context.Context, repoURL, ref string) map[string]string {
	if ref == "" {
		ref = "HEAD"
	}
	results := map[string]string{}

	dir, err := os.MkdirTemp("", "reposcout-inspect-*")
	if err != nil {
		f.logger.Warn("failed to create inspection workspace", "error", err)
		return results
	}
	defer os.RemoveAll(dir)

	if err := f.sparsePull(ctx, dir, repoURL, ref); err != nil {
		f.logger.Warn("failed to fetch analysis files", "repo", repoURL, "error", err)
		return results
	}

	for _, name := range AnalysisFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		// Lenient read: drop undecodable bytes instead of failing the fetch.
		results[name] = strings.ToValidUTF8(string(data), "")
	}
	return results
}

// FetchAnalysisFiles retrieves the analysis allow-list with a default
// fetcher. Convenience for callers that have no Fetcher to reuse.
func FetchAnalysisFiles(ctx context.Context, repoURL, ref string) map[string]string {
	return NewFetcher(nil, nil).FetchFiles(ctx, repoURL, ref)
}

// sparsePull initializes dir, restricts the checkout to the allow-list, and
// performs a depth-1 pull of ref. The restriction is declared before the
// transfer, same as the store's fetch path.
func (f *Fetcher) sparsePull(ctx context.Context, dir, repoURL, ref string) error {
	if _, err := f.git.Run(ctx, dir, "init"); err != nil {
		return err
	}
	if _, err := f.git.Run(ctx, dir, "remote", "add", "origin", repoURL); err != nil {
		return err
	}
	if _, err := f.git.Run(ctx, dir, "config", "core.sparseCheckout", "true"); err != nil {
		return err
	}
	sparse := filepath.Join(dir, ".git", "info", "sparse-checkout")
	if err := os.MkdirAll(filepath.Dir(sparse), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(sparse, []byte(strings.Join(AnalysisFiles, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	_, err := f.git.Run(ctx, dir, "pull", "--depth", "1", "origin", ref)
	return err
}
