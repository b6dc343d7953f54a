package scout

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// InspectThreshold is the heuristic score at which a candidate earns a
// manifest-level inspection.
const InspectThreshold = 60

// FileFetcher retrieves a small allow-listed set of manifest files from a
// repository. Implementations return only the files that exist; a failed
// fetch yields an empty map.
type FileFetcher interface {
	FetchFiles(ctx context.Context, repoURL, ref string) map[string]string
}

// FileFetcherFunc adapts a function to the FileFetcher interface.
type FileFetcherFunc func(ctx context.Context, repoURL, ref string) map[string]string

func (f FileFetcherFunc) FetchFiles(ctx context.Context, repoURL, ref string) map[string]string {
	return f(ctx, repoURL, ref)
}

// Enhancement is the outcome of inspecting one candidate. Either the
// inspection applied (Score, Rationale, and Tags carry the refinement) or it
// was skipped and SkipReason says why. A skip is a normal outcome, not an
// error.
type Enhancement struct {
	Applied    bool
	SkipReason string

	Score     int
	Rationale string
	Tags      []string
}

func skipped(reason string) Enhancement {
	return Enhancement{SkipReason: reason}
}

// Inspector refines a candidate's score and rationale from its build
// manifests.
type Inspector struct {
	fetch  FileFetcher
	logger *log.Logger
}

// NewInspector creates an inspector. A nil logger falls back to the package
// default.
func NewInspector(fetch FileFetcher, logger *log.Logger) *Inspector {
	if logger == nil {
		logger = log.Default()
	}
	return &Inspector{fetch: fetch, logger: logger}
}

// Inspect fetches the candidate's manifests and derives stack tags and a
// score adjustment. It never fails: anything that prevents a useful result
// comes back as a skipped Enhancement.
func (i *Inspector) Inspect(ctx context.Context, c Candidate) Enhancement {
	if i.fetch == nil {
		return skipped("no file fetcher configured")
	}

	files := i.fetch.FetchFiles(ctx, c.SourceURL, "")
	if len(files) == 0 {
		return skipped("no manifests retrieved")
	}

	score := c.MatchScore
	rationale := c.Rationale
	var tags []string

	if pom, ok := files["pom.xml"]; ok {
		tags = append(tags, "Maven")
		if strings.Contains(pom, "jeecg-boot-starter") {
			score += 20
			tags = append(tags, "Jeecg-Native")
			rationale += " [Confirmed: Native Jeecg Dependency]"
		}
		if strings.Contains(pom, "mybatis-plus") {
			tags = append(tags, "MyBatis+")
		}
	}
	if _, ok := files["package.json"]; ok {
		tags = append(tags, "Node")
	}

	if len(tags) == 0 {
		return skipped("no recognized manifests in fetched files")
	}

	rationale += " (Deep Analysis: " + strings.Join(tags, ", ") + ")"
	i.logger.Debug("inspection applied", "candidate", c.Name, "tags", tags, "score", score)
	return Enhancement{
		Applied:   true,
		Score:     score,
		Rationale: rationale,
		Tags:      tags,
	}
}
