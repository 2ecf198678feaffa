package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/logging"
	"github.com/postreview/svndiff/internal/store"
)

// Diff run modes, recorded with each run.
const (
	ModeWorkingCopy   = "working-copy"
	ModeRepositoryURL = "repository-url"
	ModeChangelist    = "changelist"
)

// Configuration errors surfaced before any svn command is run.
var (
	// ErrRevisionRangeRequired: diffing two repository URLs needs to
	// know which revisions to compare.
	ErrRevisionRangeRequired = errors.New("diffing against a repository URL requires a revision range")

	// ErrCopiesNeedDecision: `svn diff` hides the history of files
	// added with svn cp unless told otherwise, and the right choice
	// depends on the review server's capabilities.
	ErrCopiesNeedDecision = errors.New("files in the changeset have history scheduled with commit; rerun with --show-copies-as-adds=y/n")
)

// Request describes one diff run.
type Request struct {
	// Files restricts the diff to the given paths. In repository-URL
	// mode a single entry overrides the base path instead.
	Files []string

	// Changelist diffs a named local changelist.
	Changelist string

	// RevisionRange is "N:M" or a single revision (implying :HEAD in
	// repository-URL mode).
	RevisionRange string

	// RepositoryURL switches to explicit-URL mode: the diff is
	// computed between two repository URLs with no working copy.
	RepositoryURL string

	// ShowCopiesAsAdds resolves the copied-files ambiguity: "y", "n",
	// or empty to decide interactively.
	ShowCopiesAsAdds string

	// ReportPath, when set, receives a rendered run report.
	ReportPath string
}

// Validate reports configuration errors a run can detect up front.
func (r Request) Validate() error {
	if r.RepositoryURL != "" && r.RevisionRange == "" {
		return ErrRevisionRangeRequired
	}
	return nil
}

// Result is the outcome of a diff run.
type Result struct {
	Diff       string
	Summary    domain.DiffSummary
	Repository domain.RepositoryInfo
	Mode       string
	RunID      string
}

// Deps captures the orchestrator's collaborators. Store, Reporter and
// Prompter are optional.
type Deps struct {
	SVN        SVNEngine
	Normalizer Normalizer
	Store      store.Store
	Reporter   Reporter
	Prompter   Prompter
	Now        func() time.Time
}

// Orchestrator runs the generate-normalize-record sequence.
type Orchestrator struct {
	svn        SVNEngine
	normalizer Normalizer
	store      store.Store
	reporter   Reporter
	prompter   Prompter
	now        func() time.Time
	log        zerolog.Logger
}

// NewOrchestrator wires an orchestrator from its dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		svn:        deps.SVN,
		normalizer: deps.Normalizer,
		store:      deps.Store,
		reporter:   deps.Reporter,
		prompter:   deps.Prompter,
		now:        now,
		log:        logging.GetLogger("generate"),
	}
}

// Generate produces the normalized diff for the request.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	repo, err := o.svn.RepositoryInfo(ctx, req.RepositoryURL)
	if err != nil {
		return Result{}, err
	}

	explicitURL := req.RepositoryURL != ""
	args, mode, revSpec := buildDiffArgs(req, &repo)

	if !explicitURL {
		copyFlag, err := o.resolveCopiesAsAdds(ctx, req.ShowCopiesAsAdds)
		if err != nil {
			return Result{}, err
		}
		if copyFlag {
			args = append(args, "--show-copies-as-adds")
		}
	}

	o.log.Info().Str("mode", mode).Strs("args", args).Msg("running svn diff")
	lines, err := o.svn.Diff(ctx, args...)
	if err != nil {
		return Result{}, err
	}

	text := o.normalizer.Normalize(ctx, lines, repo, explicitURL)
	summary := Summarize(text)

	result := Result{
		Diff:       text,
		Summary:    summary,
		Repository: repo,
		Mode:       mode,
		RunID:      store.GenerateRunID(o.now(), repo.UUID, revSpec),
	}

	o.recordRun(ctx, result, revSpec)

	if o.reporter != nil && req.ReportPath != "" {
		report := domain.DiffReport{
			Repository:   repo,
			Summary:      summary,
			Mode:         mode,
			RevisionSpec: revSpec,
			GeneratedAt:  o.now(),
		}
		if err := o.reporter.Write(ctx, req.ReportPath, report); err != nil {
			return Result{}, fmt.Errorf("write report: %w", err)
		}
	}

	return result, nil
}

// resolveCopiesAsAdds applies the copied-files guard: if the working
// copy schedules history with commit, the caller (or the user, on a
// terminal) must decide whether copies appear as adds.
func (o *Orchestrator) resolveCopiesAsAdds(ctx context.Context, option string) (bool, error) {
	scheduled, err := o.svn.HistoryScheduledWithCommit(ctx)
	if err != nil {
		return false, err
	}
	if !scheduled {
		return false, nil
	}

	if option == "" {
		if o.prompter == nil {
			return false, ErrCopiesNeedDecision
		}
		yes, err := o.prompter.Confirm(ctx, "Files in your changeset have history scheduled with commit. Show copies as adds?")
		if err != nil {
			return false, err
		}
		return yes, nil
	}

	return strings.HasPrefix(strings.ToLower(option), "y"), nil
}

func (o *Orchestrator) recordRun(ctx context.Context, result Result, revSpec string) {
	if o.store == nil {
		return
	}
	run := store.Run{
		RunID:          result.RunID,
		Timestamp:      o.now(),
		RepositoryUUID: result.Repository.UUID,
		BasePath:       result.Repository.BasePath,
		RevisionSpec:   revSpec,
		Mode:           result.Mode,
		FileCount:      result.Summary.FileCount(),
		HunkCount:      result.Summary.HunkCount,
		DiffBytes:      len(result.Diff),
	}
	if err := o.store.SaveRun(ctx, run); err != nil {
		// Run history is best effort; the diff itself is the product.
		o.log.Warn().Err(err).Str("run_id", run.RunID).Msg("failed to record run")
	}
}

// buildDiffArgs assembles the `svn diff` argument list for the request
// and reports the run mode and revision spec. In repository-URL mode it
// may override the repository base path in place.
func buildDiffArgs(req Request, repo *domain.RepositoryInfo) (args []string, mode, revSpec string) {
	switch {
	case req.RepositoryURL != "":
		revs := strings.SplitN(req.RevisionRange, ":", 2)
		if len(revs) == 1 {
			revs = append(revs, "HEAD")
		}

		// A single extra argument names a new base path inside the
		// repository; several name individual files.
		files := req.Files
		if len(files) == 1 {
			repo.SetBasePath(files[0])
			files = nil
		}

		url := repo.Root + repo.BasePath
		newURL := url + "@" + revs[1]

		// At revision zero the base path did not exist yet, so diff
		// from the repository root to avoid an svn error.
		if revs[0] == "0" {
			url = repo.Root
		}
		oldURL := url + "@" + revs[0]

		args = append([]string{"--diff-cmd=diff", oldURL, newURL}, files...)
		return args, ModeRepositoryURL, revs[0] + ":" + revs[1]

	case req.Changelist != "":
		return []string{"--changelist", req.Changelist}, ModeChangelist, ""

	case req.RevisionRange != "":
		return []string{"--diff-cmd=diff", "-r", req.RevisionRange}, ModeWorkingCopy, req.RevisionRange

	default:
		return append([]string{"--diff-cmd=diff"}, req.Files...), ModeWorkingCopy, ""
	}
}
