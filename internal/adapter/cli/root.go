package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/postreview/svndiff/internal/logging"
	"github.com/postreview/svndiff/internal/store"
	"github.com/postreview/svndiff/internal/usecase/generate"
	"github.com/postreview/svndiff/internal/usecase/server"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// DiffGenerator defines the dependency required to run the diff command.
type DiffGenerator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// RunLister defines the dependency required to run the runs command.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]store.Run, error)
}

// ServerResolver defines the dependency required to run the server command.
type ServerResolver interface {
	Resolve(ctx context.Context) (server.Location, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Generator DiffGenerator
	Runs      RunLister
	Server    ServerResolver
	Args      Arguments

	// DefaultShowCopiesAsAdds comes from config diff.showCopiesAsAdds.
	DefaultShowCopiesAsAdds string

	// DefaultVerbosity comes from config logging.verbosity; -v flags
	// stack on top of it.
	DefaultVerbosity int

	Version string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "svndiff",
		Short: "Generate review-ready diffs from Subversion working copies",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(diffCommand(deps.Generator, deps.DefaultShowCopiesAsAdds))
	root.AddCommand(runsCommand(deps.Runs))
	root.AddCommand(serverCommand(deps.Server))

	var showVersion bool
	var verbosity int
	root.PersistentFlags().BoolVar(&showVersion, "version", false, "Show version and exit")
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	preRun := func(cmd *cobra.Command, args []string) error {
		logging.Setup(deps.DefaultVerbosity + verbosity)
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = preRun
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}

	return root
}

func diffCommand(generator DiffGenerator, defaultShowCopiesAsAdds string) *cobra.Command {
	var repositoryURL string
	var revisionRange string
	var changelist string
	var showCopiesAsAdds string
	var outputPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "diff [files...]",
		Short: "Generate a normalized diff for the working copy or a repository URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			copies := showCopiesAsAdds
			if !cmd.Flags().Changed("show-copies-as-adds") {
				copies = defaultShowCopiesAsAdds
			}
			if copies != "" && !strings.HasPrefix(strings.ToLower(copies), "y") && !strings.HasPrefix(strings.ToLower(copies), "n") {
				return fmt.Errorf("invalid --show-copies-as-adds value %q; expected y or n", copies)
			}

			result, err := generator.Generate(cmd.Context(), generate.Request{
				Files:            args,
				Changelist:       changelist,
				RevisionRange:    revisionRange,
				RepositoryURL:    repositoryURL,
				ShowCopiesAsAdds: copies,
				ReportPath:       reportPath,
			})
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(result.Diff), 0o644); err != nil {
					return fmt.Errorf("write diff to %s: %w", outputPath, err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d files, %d hunks to %s\n",
					result.Summary.FileCount(), result.Summary.HunkCount, outputPath)
				return nil
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), result.Diff)
			return nil
		},
	}

	cmd.Flags().StringVar(&repositoryURL, "repository-url", "", "Diff between repository URLs instead of the working copy (requires --revision)")
	cmd.Flags().StringVar(&revisionRange, "revision", "", "Revision range N:M, or a single revision")
	cmd.Flags().StringVar(&changelist, "changelist", "", "Diff a named changelist")
	cmd.Flags().StringVar(&showCopiesAsAdds, "show-copies-as-adds", "", "Treat copied files as added: y or n (prompts when unset and copies exist)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the diff to a file instead of stdout")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a markdown run report to the given path")

	return cmd
}

func runsCommand(lister RunLister) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded diff runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lister == nil {
				return fmt.Errorf("run history is disabled; enable store.enabled in the configuration")
			}
			runs, err := lister.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "RUN\tWHEN\tMODE\tREVISIONS\tFILES\tHUNKS\tBYTES")
			for _, run := range runs {
				rev := run.RevisionSpec
				if rev == "" {
					rev = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
					run.RunID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Mode,
					rev,
					run.FileCount,
					run.HunkCount,
					run.DiffBytes,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum runs to list (0 uses the store default)")

	return cmd
}

func serverCommand(resolver ServerResolver) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Show the review server and matched repository for this working copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resolver == nil {
				return fmt.Errorf("server discovery requires a Subversion working copy")
			}
			loc, err := resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Server:    %s\n", loc.URL)
			_, _ = fmt.Fprintf(out, "Root:      %s\n", loc.Repository.Root)
			_, _ = fmt.Fprintf(out, "Base path: %s\n", loc.Repository.BasePath)
			if loc.Repository.UUID != "" {
				_, _ = fmt.Fprintf(out, "UUID:      %s\n", loc.Repository.UUID)
			}
			return nil
		},
	}
}
