package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/meritrank/internal/academic"
	"github.com/pavelanni/meritrank/internal/catalog"
	"github.com/pavelanni/meritrank/internal/config"
	appI18n "github.com/pavelanni/meritrank/internal/i18n"
	"github.com/pavelanni/meritrank/internal/model"
	"github.com/pavelanni/meritrank/internal/population"
	"github.com/pavelanni/meritrank/internal/report"
	"github.com/pavelanni/meritrank/internal/store"
)

func main() {
	loadEnv()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEnv picks up MERITRANK_* variables from a .env file in the working
// directory, if there is one.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error reading .env file", "error", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "meritrank",
		Short:        "Synthetic student population with a global merit ranking",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.Int("students", population.DefaultSize, "Number of synthetic students generated at startup")
	pf.Uint64("seed", 0, "Random seed (0 = time-based)")
	pf.String("addresses", "direcciones.txt", "Address list, one address per line")
	pf.String("catalog", "", "Course catalog YAML (empty = embedded catalog)")
	pf.Int64("account-base", store.DefaultAccountBase, "First account number")
	pf.String("program", model.DefaultProgram, "Program assigned to every student")
	pf.StringP("lang", "l", appI18n.DefaultLang, "Console language (es, en)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	shell := shellCmd()
	root.AddCommand(shell, topCmd(), sampleCmd(), searchCmd(), showCmd(), catalogCmd(), exportCmd())

	// Make "shell" the default when no subcommand is given.
	root.RunE = shell.RunE
	root.Flags().AddFlagSet(shell.Flags())

	return root
}

func shellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Generate the population and open the interactive menu",
		RunE:  runShell,
	}
	cmd.Flags().StringP("output", "o", report.DefaultFileName, "File written by the export menu entry")
	return cmd
}

func topCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the best-ranked students",
		Args:  cobra.NoArgs,
		RunE:  runTop,
	}
	cmd.Flags().IntP("count", "n", 10, "Number of students to print")
	return cmd
}

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print randomly chosen students",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	cmd.Flags().IntP("count", "n", 0, "Number of students to print (required)")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search SURNAME",
		Short: "Find students by first or second surname (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ACCOUNT",
		Short: "Print the academic record card of a student",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the course catalog",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ranking",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.StringP("output", "o", report.DefaultFileName, "Output file path (- for stdout)")
	f.String("format", "", "Export format (csv, xlsx); empty picks it from the file extension")
	return cmd
}

func setupLogging(cfg *config.Config, runID string) *slog.Logger {
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch cfg.LogFormat {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	logger := slog.New(logHandler).With("run_id", runID)
	slog.SetDefault(logger)
	return logger
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MERITRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("meritrank")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/meritrank")
	v.AddConfigPath("/etc/meritrank")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}

	return v
}

// app is a fully built run: configuration, catalog and populated store.
type app struct {
	cfg     *config.Config
	ctx     context.Context
	log     *slog.Logger
	catalog *catalog.Catalog
	store   *store.Store
}

// bootstrap reads the configuration of cmd, sets up logging and localization
// and builds the application. The population is only generated when populate
// is set.
func bootstrap(cmd *cobra.Command, populate bool) (*app, *viper.Viper, error) {
	v := viperForCmd(cmd)
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	logger := setupLogging(cfg, uuid.NewString())
	if path := v.ConfigFileUsed(); path != "" {
		logger.Info("loaded config file", "path", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger, populate)
	if err != nil {
		return nil, nil, err
	}
	return a, v, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, populate bool) (*app, error) {
	if err := appI18n.Init(cfg.Lang); err != nil {
		return nil, fmt.Errorf("init i18n: %w", err)
	}

	var (
		c   *catalog.Catalog
		err error
	)
	if cfg.Catalog != "" {
		c, err = catalog.Load(cfg.Catalog)
	} else {
		c, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	st := store.New(academic.NewGenerator(c, rng), rng, store.Options{
		AccountBase: cfg.AccountBase,
		Program:     cfg.Program,
		Logger:      logger,
	})

	a := &app{
		cfg:     cfg,
		ctx:     appI18n.WithLang(ctx, cfg.Lang),
		log:     logger,
		catalog: c,
		store:   st,
	}
	if !populate {
		return a, nil
	}

	book, err := population.LoadAddresses(cfg.Addresses, rng)
	if err != nil {
		logger.Warn("address list unavailable, using placeholder", "path", cfg.Addresses, "error", err)
	} else {
		logger.Info("loaded address list", "path", cfg.Addresses, "addresses", book.Len())
		if book.Len() < cfg.Students {
			logger.Warn("fewer addresses than students, addresses will repeat",
				"addresses", book.Len(), "students", cfg.Students)
		}
	}

	started := time.Now()
	builder := population.NewBuilder(rng, book, c.Semesters())
	if err := builder.Populate(st, cfg.Students, logger); err != nil {
		return nil, fmt.Errorf("generate population: %w", err)
	}
	logger.Info("population ready",
		"students", st.Len(),
		"courses", c.Len(),
		"seed", seed,
		"elapsed", time.Since(started),
	)
	return a, nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, v, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	sh := newShell(a, cmd.InOrStdin(), cmd.OutOrStdout(), v.GetString("output"))
	return sh.Run()
}

func runTop(cmd *cobra.Command, _ []string) error {
	a, v, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	top, err := a.store.Top(v.GetInt("count"))
	if err != nil {
		return err
	}
	return report.PrintTop(a.ctx, cmd.OutOrStdout(), top)
}

func runSample(cmd *cobra.Command, _ []string) error {
	a, v, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	sample, err := a.store.SampleRandom(v.GetInt("count"))
	if err != nil {
		return err
	}
	return report.PrintSample(a.ctx, cmd.OutOrStdout(), sample)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, _, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	term := args[0]
	return report.PrintSearch(a.ctx, cmd.OutOrStdout(), term, a.store.FindBySurname(term))
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return model.InvalidInput("show", "account %q is not a number", args[0])
	}
	a, _, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	a.store.Rerank()
	st, ok := a.store.FindByAccountID(id)
	if !ok {
		return model.NotFound("show", "account %d", id)
	}
	return report.PrintRecord(a.ctx, cmd.OutOrStdout(), st)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	a, _, err := bootstrap(cmd, false)
	if err != nil {
		return err
	}
	return report.PrintCatalog(a.ctx, cmd.OutOrStdout(), a.catalog)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, v, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	format := v.GetString("format")
	if format == "" {
		format = report.FormatFor(outPath, report.FormatCSV)
	}
	if !report.IsFormat(format) {
		return model.InvalidInput("export", "unknown format %q (want one of %s)", format, strings.Join(report.Formats, ", "))
	}

	rows := a.store.ExportRanking()
	if outPath == "" || outPath == "-" {
		return report.Write(cmd.OutOrStdout(), format, rows)
	}
	if err := report.ExportFile(outPath, format, rows); err != nil {
		return fmt.Errorf("export ranking: %w", err)
	}
	a.log.Info("exported ranking", "path", outPath, "format", format, "rows", len(rows))
	fmt.Fprintln(cmd.OutOrStdout(), appI18n.Tpd(a.ctx, "ExportDone", len(rows), map[string]any{"Path": outPath}))
	return nil
}
