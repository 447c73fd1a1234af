// Package main provides the CLI entry point for exsheet-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exsheet-go/internal/logging"
	"github.com/ukaji3/exsheet-go/internal/server"
	"github.com/ukaji3/exsheet-go/pkg/exsheet"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/output"
)

var (
	configPath string
	pretty     bool
	logLevel   string

	sheetName string
	rangeRef  string
	startRow  int
	startCol  int
	endRow    int
	endCol    int
	header    bool

	dataJSON string
	dataFile string
	insert   bool

	listenAddr string

	settings cliConfig
	logOut   io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run executes the CLI and returns the exit code. Failures are reported as JSON
// on stdout.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	settings = defaultCLIConfig()

	rootCmd := newRootCmd(stdout)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)

	if err := rootCmd.Execute(); err != nil {
		data, jsonErr := output.FailureToJSON(err, settings.Pretty)
		if jsonErr != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exsheet",
		Short: "Read and idempotently write cell ranges in Excel files",
		Long: `exsheet reads rectangular ranges of cells from xlsx sheets as JSON and
writes JSON rows back, touching only the cells whose content changes.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	rootCmd.SetOut(stdout)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")

	rootCmd.AddCommand(newReadCmd(stdout), newWriteCmd(stdout), newServeCmd())
	return rootCmd
}

func newReadCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [input.xlsx]",
		Short: "Read a range of cells as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(stdout, args[0])
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&rangeRef, "range", "", `Range such as "B2:E5", "B2:" or a defined name; overrides coordinates`)
	cmd.Flags().IntVar(&startRow, "start-row", 1, "First row (1-based)")
	cmd.Flags().IntVar(&startCol, "start-col", 1, "First column (1-based)")
	cmd.Flags().IntVar(&endRow, "end-row", 0, "Last row (0: last row of the sheet)")
	cmd.Flags().IntVar(&endCol, "end-col", 0, "Last column (0: last column of the sheet)")
	cmd.Flags().BoolVar(&header, "header", false, "Treat the first row as field names and emit objects")
	return cmd
}

func newWriteCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [output.xlsx]",
		Short: "Write JSON rows into a sheet, changing only differing cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd.InOrStdin(), stdout, args[0])
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: active sheet); created when missing")
	cmd.Flags().IntVar(&startRow, "start-row", 1, "Anchor row (1-based)")
	cmd.Flags().IntVar(&startCol, "start-col", 1, "Anchor column (1-based)")
	cmd.Flags().StringVar(&dataJSON, "data", "", "JSON list of lists or list of objects")
	cmd.Flags().StringVar(&dataFile, "data-file", "", `File holding the JSON data ("-" for stdin)`)
	cmd.Flags().BoolVar(&insert, "insert", false, "Insert rows at the anchor before writing, only when something changes")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	cmd.MarkFlagsOneRequired("data", "data-file")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read and write operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", defaultListenAddr, "HTTP listen address")
	return cmd
}

// setup merges defaults, the config file and explicitly set flags, in that
// order, then configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	cfg := defaultCLIConfig()
	if configPath != "" {
		loaded, err := loadCLIConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flags.Changed("log-level") {
		if _, ok := logging.ParseLevel(logLevel); !ok {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		cfg.LogLevel = logLevel
	}
	if flags.Changed("sheet") {
		cfg.Sheet = sheetName
	}
	if flags.Changed("listen") {
		cfg.Listen = listenAddr
	}
	settings = cfg

	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	logCfg.Out = logOut
	if cfg.LogLevel != "" {
		logCfg.Level, _ = logging.ParseLevel(cfg.LogLevel)
	}
	logging.Configure(logCfg)
	return nil
}

func runRead(stdout io.Writer, path string) error {
	sel, overridden := grid.SelectionFromParams(rangeRef, startRow, startCol, endRow, endCol)
	if overridden {
		log.Warn().
			Str("range", rangeRef).
			Msg("--range given; start/end coordinate flags are ignored")
	}

	result, err := exsheet.Read(path, exsheet.ReadOptions{
		Sheet:     settings.Sheet,
		Selection: sel,
		Header:    header,
	})
	if err != nil {
		return err
	}
	return emit(stdout, result)
}

func runWrite(stdin io.Reader, stdout io.Writer, path string) error {
	raw, err := loadData(stdin)
	if err != nil {
		return err
	}

	payload, err := models.DecodePayload(raw)
	if err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	result, err := exsheet.Write(path, exsheet.WriteOptions{
		Sheet:    settings.Sheet,
		StartRow: startRow,
		StartCol: startCol,
		Data:     payload,
		Insert:   insert,
	})
	if err != nil {
		return err
	}
	return emit(stdout, result)
}

func loadData(stdin io.Reader) ([]byte, error) {
	switch dataFile {
	case "":
		return []byte(dataJSON), nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read data from stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		return data, nil
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	router := server.SetupRouter(server.NewApiController(settings.Sheet), log.Logger)
	srv := &http.Server{
		Addr:              settings.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", settings.Listen).Msg("exsheet api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("exsheet api shutting down")
	return srv.Shutdown(shutdownCtx)
}

func emit(stdout io.Writer, v interface{}) error {
	data, err := output.ToJSON(v, settings.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
