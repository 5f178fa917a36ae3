package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/threadodds/internal/config"
	"github.com/nao1215/threadodds/internal/fetcher"
	"github.com/nao1215/threadodds/internal/keyword"
	tolog "github.com/nao1215/threadodds/internal/log"
	"github.com/nao1215/threadodds/internal/model"
	"github.com/nao1215/threadodds/internal/pipeline"
	"github.com/nao1215/threadodds/internal/report"
	"github.com/nao1215/threadodds/internal/scraper"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [thread-url [range]]...",
		Short: "Compute keyword odds for one or more threads",
		Long: `Analyze downloads the given threads, counts the posts mentioning each
keyword group and prints odds derived from the counts.

A thread may be followed by a post range:
  URL          every post
  URL 50       post 50 to the last post
  URL 1-100    posts 1 to 100

A keyword group lists synonyms separated by "|"; the first synonym is the
label shown in the report. A post counts once per group no matter how many
synonyms it contains.

Examples:
  # Two groups over one thread
  threadodds analyze https://egg.5ch.net/test/read.cgi/keiba/1700000000/ \
    -k "エンペラーワケア|エンペラー" -k "ペプチドナイル|ペプチド"

  # Only posts 1 to 500, with a 75% payout rate
  threadodds analyze https://egg.5ch.net/test/read.cgi/keiba/1700000000/ 1-500 \
    -k "A,B,C" -r 75

  # Threads from a file and keywords from a preset in .threadodds
  threadodds analyze --list threads.txt --preset derby

  # Markdown report written to a file
  threadodds analyze -m -o out/odds.md --list threads.txt -k A -k B`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringArrayP("keyword", "k", nil,
		`Keyword group, synonyms separated by "|" (repeatable, also split on ",")`)
	cmd.Flags().StringP("preset", "P", "",
		"Use a keyword preset from the configuration file")
	cmd.Flags().StringP("list", "l", "",
		`File with one "URL [range]" line per thread`)
	cmd.Flags().Float64P("payout-rate", "r", config.DefaultPayoutPercent,
		"Payout rate in percent (10-100)")

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().Duration("fallback-delay", config.DefaultFallbackDelay,
		"Wait before fetching the HTML page of a host just asked for a dat file")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"Default User-Agent header")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of threads fetched concurrently")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .threadodds in current or home directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cmd.OutOrStdout(), cfg, logger)
}

// getBoolFlag reads a flag from the command or the root's persistent set.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from cobra command flags and arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	keywords, err := flags.GetStringArray("keyword")
	if err != nil {
		return nil, err
	}
	for _, k := range keywords {
		cfg.Keywords = append(cfg.Keywords, keyword.SplitSpecs(k)...)
	}

	if cfg.Preset, err = flags.GetString("preset"); err != nil {
		return nil, err
	}
	if cfg.PayoutPercent, err = flags.GetFloat64("payout-rate"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.FallbackDelay, err = flags.GetDuration("fallback-delay"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	cfg.Verbose = getBoolFlag(cmd, "verbose")

	// An explicitly named config file must exist; the searched ones may not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.File = &config.File{
			Hosts:   make(map[string]config.HostConfig),
			Presets: make(map[string][]string),
		}
	}

	if cfg.Preset != "" {
		specs, err := cfg.File.Preset(cfg.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Keywords = append(cfg.Keywords, specs...)
	}

	cfg.Targets = joinRangeArgs(args)

	listPath, err := flags.GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		data, err := os.ReadFile(listPath) //nolint:gosec // user-supplied list file
		if err != nil {
			return nil, fmt.Errorf("failed to read thread list: %w", err)
		}
		for _, req := range model.ParseThreadRequests(string(data)) {
			cfg.Targets = append(cfg.Targets, req.String())
		}
	}

	return cfg, nil
}

// joinRangeArgs attaches a bare range argument such as "1-100" to the URL
// before it, so "URL 1-100" may be passed unquoted.
func joinRangeArgs(args []string) []string {
	var lines []string
	for _, arg := range args {
		if len(lines) > 0 && isRangeToken(arg) {
			lines[len(lines)-1] += " " + arg
			continue
		}
		lines = append(lines, arg)
	}
	return lines
}

func isRangeToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// setupLogger creates a structured logger writing to the command's stderr.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if getBoolFlag(cmd, "log-json") {
		return tolog.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return tolog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// runAnalyze executes the analysis and writes the report.
func runAnalyze(ctx context.Context, stdout io.Writer, cfg *config.Config, logger *slog.Logger) error {
	var requests []model.ThreadRequest
	for _, line := range cfg.Targets {
		if req, ok := model.ParseThreadRequest(line); ok {
			requests = append(requests, req)
		}
	}

	logger.Info("starting analysis",
		"threads", len(requests),
		"keywords", len(cfg.Keywords),
		"payoutRate", cfg.PayoutPercent,
		"batchSize", cfg.BatchSize,
	)

	f := fetcher.New(nil,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithFallbackDelay(cfg.FallbackDelay),
		fetcher.WithProfiles(hostProfiles(cfg.File)),
		fetcher.WithLogger(logger),
	)
	s := scraper.New(f, scraper.WithLogger(logger))

	analyzer := pipeline.NewScrapeAnalyzer(s, cfg.BatchSize, logger)
	result, err := analyzer.Run(ctx, requests, cfg.Keywords, cfg.PayoutRate())
	if err != nil {
		return err
	}

	return outputReport(stdout, cfg, result)
}

// hostProfiles adapts the configuration file to the fetcher's per-host
// settings.
func hostProfiles(file *config.File) func(host string) fetcher.Profile {
	return func(host string) fetcher.Profile {
		if file == nil {
			return fetcher.Profile{}
		}
		hc := file.GetHostConfig(host)
		return fetcher.Profile{
			UserAgent: hc.UserAgent,
			Cookie:    hc.Cookie,
			Headers:   hc.Headers,
		}
	}
}

// outputReport writes the report in the requested format.
func outputReport(stdout io.Writer, cfg *config.Config, result *model.AnalysisReport) error {
	output := stdout
	if cfg.ReportFile != "" {
		if err := ensureDir(cfg.ReportFile); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(result)
	return err
}
