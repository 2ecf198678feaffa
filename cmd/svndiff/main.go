package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/postreview/svndiff/internal/adapter/cli"
	"github.com/postreview/svndiff/internal/adapter/output/markdown"
	"github.com/postreview/svndiff/internal/adapter/reviewboard"
	"github.com/postreview/svndiff/internal/adapter/store/sqlite"
	"github.com/postreview/svndiff/internal/adapter/svn"
	"github.com/postreview/svndiff/internal/config"
	"github.com/postreview/svndiff/internal/store"
	"github.com/postreview/svndiff/internal/usecase/generate"
	"github.com/postreview/svndiff/internal/usecase/normalize"
	"github.com/postreview/svndiff/internal/usecase/server"
	"github.com/postreview/svndiff/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "svnreview",
		EnvPrefix:   "SVNREVIEW",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	client := svn.NewClient(workDir)
	pipeline := normalize.NewPipeline(client)

	var runStore store.Store
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			sqliteStore, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize store: %v", err)
			} else {
				runStore = sqliteStore
				defer runStore.Close()
			}
		}
	}

	var prompter generate.Prompter
	if generate.IsInteractive() {
		prompter = &stdinPrompter{in: os.Stdin, out: os.Stderr}
	}

	orchestrator := generate.NewOrchestrator(generate.Deps{
		SVN:        client,
		Normalizer: pipeline,
		Store:      runStore,
		Reporter:   markdown.NewWriter(),
		Prompter:   prompter,
	})

	discovery := server.NewDiscovery(
		client,
		server.NewLocator(client),
		func(serverURL string) server.RepositoryLister {
			return reviewboard.NewClient(serverURL)
		},
		workDir,
		cfg.Server.URL,
	)

	var lister cli.RunLister
	if runStore != nil {
		lister = runStore
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Generator:               orchestrator,
		Runs:                    lister,
		Server:                  discovery,
		DefaultShowCopiesAsAdds: cfg.Diff.ShowCopiesAsAdds,
		DefaultVerbosity:        cfg.Logging.Verbosity,
		Version:                 version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "svnreview"))
	}
	return paths
}

// stdinPrompter asks yes/no questions on the terminal. It writes the
// question to stderr so prompts never mix into a diff on stdout.
type stdinPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *stdinPrompter) Confirm(_ context.Context, question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)
	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(answer, "y"), nil
}

// Compile-time interface compliance checks
var _ generate.SVNEngine = (*svn.Client)(nil)
var _ generate.Normalizer = (*normalize.Pipeline)(nil)
var _ generate.Reporter = (*markdown.Writer)(nil)
var _ store.Store = (*sqlite.Store)(nil)
var _ server.RepositoryLister = (*reviewboard.Client)(nil)
var _ server.PropertyReader = (*svn.Client)(nil)
var _ server.RepositoryInfoProvider = (*svn.Client)(nil)
var _ normalize.MetadataLookup = (*svn.Client)(nil)
