package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"vitalis-hq/glosaguard/pkg/cli"
	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/schema"
	"vitalis-hq/glosaguard/pkg/tables"
	"vitalis-hq/glosaguard/pkg/telemetry/metrics"
	"vitalis-hq/glosaguard/pkg/validation"
	"vitalis-hq/glosaguard/pkg/validation/rules"
)

var checkFlags struct {
	stopOnFirstError bool
	timeout          time.Duration
	parallel         bool
	rules            []string
	disable          []string
	format           string
	progress         bool
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate TISS guide files",
	Long: `Validate one or more TISS guide XML files and report the glosas each
would receive.

Each file is parsed, classified, structurally pre-checked, and run through
the full rule catalog. Documents are validated independently: each gets its
own result, and a failure in one file does not affect the others.

The exit code is 1 when any file has blocking errors; warnings alone exit 0.

Examples:
  # Validate a single guide
  glosaguard check guia.xml

  # Validate a batch, stopping each document at the first error
  glosaguard check --stop-on-first-error lote.xml

  # JSON output for CI/CD
  glosaguard check --format json guia.xml

  # Run only specific rules
  glosaguard check --rules cpf-valido,cns-valido guia.xml

  # Disable a rule for this run
  glosaguard check --disable numero-carteira guia.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.stopOnFirstError, "stop-on-first-error", false, "stop each document at the first blocking error")
	checkCmd.Flags().DurationVar(&checkFlags.timeout, "timeout", 0, "soft time budget per document (0 = none)")
	checkCmd.Flags().BoolVar(&checkFlags.parallel, "parallel", false, "run applicable rules concurrently")
	checkCmd.Flags().StringSliceVar(&checkFlags.rules, "rules", nil, "run only these rule ids")
	checkCmd.Flags().StringSliceVar(&checkFlags.disable, "disable", nil, "disable these rule ids for this run")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show a progress bar for multi-file batches")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	deps := rules.Deps{Logger: logger}

	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		deps.Recorder = metrics.NewValidationMetrics(&cfg.Telemetry.Metrics, registry)
	}

	var managed []*tables.LazyTable
	if cfg.Tables.Dir != "" {
		source := tables.NewFileSource(cfg.Tables.Dir, logger)
		procedures := source.Table("tuss")
		occupations := source.Table("cbo")
		deps.Procedures = procedures
		deps.Occupations = occupations
		managed = []*tables.LazyTable{procedures, occupations}
	}

	if cfg.Tables.Watch && len(managed) > 0 {
		watcher, err := tables.NewWatcher(cfg.Tables.Dir, logger)
		if err != nil {
			return fmt.Errorf("start table watcher: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx, func() error {
				return reloadTables(ctx, managed)
			}); err != nil {
				logger.Error("table watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	if cfg.Tables.RefreshSchedule != "" && len(managed) > 0 {
		scheduler := tables.NewRefreshScheduler(cfg.Tables.RefreshSchedule, managed, logger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start table refresh scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	engine := rules.NewEngine(deps)
	for _, id := range cfg.Rules.Disabled {
		engine.SetRuleEnabled(id, false)
	}
	for _, id := range checkFlags.disable {
		engine.SetRuleEnabled(id, false)
	}

	opts := validation.Options{
		StopOnFirstError: checkFlags.stopOnFirstError,
		Timeout:          checkFlags.timeout,
		Parallel:         checkFlags.parallel,
	}
	if !cmd.Flags().Changed("stop-on-first-error") {
		opts.StopOnFirstError = cfg.Engine.StopOnFirstError
	}
	if !cmd.Flags().Changed("timeout") {
		opts.Timeout = cfg.Engine.Timeout
	}
	if !cmd.Flags().Changed("parallel") {
		opts.Parallel = cfg.Engine.Parallel
	}

	var progress cli.ProgressReporter
	if checkFlags.progress && len(args) > 1 && checkFlags.format == "text" {
		progress = cli.NewProgressReporter(os.Stderr)
		progress.Start(int64(len(args)))
	}

	reports := make([]cli.Report, 0, len(args))
	for i, file := range args {
		if ctx.Err() != nil {
			return fmt.Errorf("interrupted after %d of %d documents", i, len(args))
		}
		reports = append(reports, checkFile(ctx, engine, opts, file))
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	formatter := cli.NewReportFormatter(cli.OutputFormat(checkFlags.format))
	if err := formatter.FormatTo(os.Stdout, reports); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.Valid {
			return cli.NewCommandError("check", fmt.Errorf("validation failed"))
		}
	}
	return nil
}

// checkFile validates one document. Parse failures become a report with a
// single blocking finding so batch runs keep going.
func checkFile(ctx context.Context, engine *validation.Engine, opts validation.Options, file string) cli.Report {
	content, err := os.ReadFile(file)
	if err != nil {
		return errorReport(file, "XML001", fmt.Sprintf("não foi possível ler o arquivo: %v", err))
	}

	g, err := guide.NewContext(string(content))
	if err != nil {
		return errorReport(file, "XML002", fmt.Sprintf("XML malformado: %v", err))
	}

	var result *validation.Result
	if len(checkFlags.rules) > 0 {
		result = engine.ExecuteSpecific(ctx, g, checkFlags.rules, opts)
	} else {
		result = engine.Execute(ctx, g, opts)
	}

	// Structural pre-check findings are advisory and join the warnings.
	result.Warnings = append(schema.Check(g), result.Warnings...)

	return cli.NewReport(file, string(g.GuiaType), result)
}

// errorReport wraps a file-level failure as a single-finding report.
func errorReport(file, code, message string) cli.Report {
	return cli.Report{
		File:          file,
		GuiaType:      string(guide.TypeUnknown),
		Valid:         false,
		Errors:        []validation.Finding{validation.NewError(code, "", message)},
		Warnings:      []validation.Finding{},
		ExecutedRules: []string{},
		SkippedRules:  []string{},
	}
}

func reloadTables(ctx context.Context, managed []*tables.LazyTable) error {
	var errs []string
	for _, t := range managed {
		if err := t.Reload(ctx); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("reload tables: %s", strings.Join(errs, "; "))
	}
	return nil
}
