package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/hondana/cmd/save"
	"github.com/lepinkainen/hondana/internal/config"
)

var runSave = save.RunWithParams

// envKeyReplacer maps nested keys to variable names: datastore.dsn is read
// from HONDANA_DATASTORE_DSN.
var envKeyReplacer = strings.NewReplacer(".", "_")

// CLI represents the complete command structure for the hondana application
type CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`

	// Datastore flags
	DBDriver string `name:"db-driver" help:"Datastore driver (sqlite or postgres)"`
	DBDSN    string `name:"db-dsn" help:"SQLite file path or PostgreSQL connection string"`

	Save SaveCmd `cmd:"" help:"Fetch book metadata for ISBNs and store it"`
}

// SaveCmd represents the save command
type SaveCmd struct {
	ISBN       string `arg:"" optional:"" help:"ISBN-13 to import"`
	CSV        string `help:"CSV file with one ISBN-13 per row (first column)"`
	Chunk      int    `help:"Number of ISBNs per metadata request (defaults to import.chunksize)"`
	Report     string `help:"Write a YAML run report to this file"`
	JSONOutput string `name:"json-output" help:"Write the saved records as JSON to this file"`
	Strict     bool   `help:"Exit with an error when any book in a CSV import fails"`

	NoOverwrite bool `name:"no-overwrite" help:"Keep existing report and JSON output files"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("hondana"),
		kong.Description("Import book metadata from OpenBD into a local database."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(true)
	}
	updateGlobalConfig(&cli)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.BindTo(runCtx, (*context.Context)(nil))

	if err := ctx.Run(); err != nil {
		if errors.Is(err, save.ErrNoInput) {
			ctx.FatalIfErrorf(err)
		}
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config.SetDefaults()

	viper.SetEnvPrefix("HONDANA")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetDatastore(cli.DBDriver, cli.DBDSN)
	config.SetChunkSize(cli.Save.Chunk)
	if cli.Save.NoOverwrite {
		config.SetOverwriteFiles(false)
	}
}

// Run executes the save command
func (s *SaveCmd) Run(ctx context.Context) error {
	return runSave(ctx, save.Params{
		ISBN:       s.ISBN,
		CSVFile:    s.CSV,
		ChunkSize:  s.Chunk,
		ReportFile: s.Report,
		JSONOutput: s.JSONOutput,
		Strict:     s.Strict,
	})
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
