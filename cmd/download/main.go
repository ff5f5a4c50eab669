package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/arkad-labs/histbatch/internal/logger"
	"github.com/arkad-labs/histbatch/pkg/histdata"
	"github.com/arkad-labs/histbatch/pkg/histdata/provider"
	"github.com/arkad-labs/histbatch/pkg/histdata/writer"
	"github.com/arkad-labs/histbatch/pkg/utils"
)

const dateLayout = "2006-01-02"

// downloadAction loads the run config, applies flag overrides, and downloads
// every symbol from the list file.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	batch, err := histdata.NewBatchDownloader(cfg, appLogger)
	if err != nil {
		return err
	}

	listFile := cmd.String("symbols")
	results := batch.DownloadFromListFile(ctx, listFile, cfg)

	for symbol, path := range results {
		if path != "" {
			fmt.Printf("%s: SUCCESS (%s)\n", symbol, path)
		} else {
			fmt.Printf("%s: FAILED\n", symbol)
		}
	}

	fmt.Println(histdata.Summary(results))

	return nil
}

// schemaAction prints the JSON schema of the YAML config file.
func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := utils.SchemaFromConfig(histdata.Config{})
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

func buildConfig(cmd *cli.Command) (histdata.Config, error) {
	var (
		cfg histdata.Config
		err error
	)

	if path := cmd.String("config"); path != "" {
		cfg, err = histdata.LoadConfig(path)
		if err != nil {
			return histdata.Config{}, err
		}
	} else {
		cfg, err = histdata.NewConfig()
		if err != nil {
			return histdata.Config{}, err
		}
	}

	if cmd.IsSet("start") {
		cfg.StartDate = cmd.Timestamp("start").Format(dateLayout)
	}

	if cmd.IsSet("end") {
		cfg.EndDate = cmd.Timestamp("end").Format(dateLayout)
	}

	if cmd.IsSet("provider") {
		cfg.Provider = provider.Type(cmd.String("provider"))
	}

	if cmd.IsSet("writer") {
		cfg.Writer = writer.Type(cmd.String("writer"))
	}

	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}

	if cmd.IsSet("instruments") {
		cfg.InstrumentFile = cmd.String("instruments")
	}

	if cfg.PolygonAPIKey == "" {
		cfg.PolygonAPIKey = os.Getenv("POLYGON_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return histdata.Config{}, err
	}

	return cfg, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "download",
		Usage: "Download historical OHLCV data for a list of symbols",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "symbols",
				Aliases: []string{"f"},
				Usage:   "Path to a text file with one symbol per line",
				Value:   "symbols.txt",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "First day to download in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Last day to download in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Data provider to use (polygon, binance)",
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   "Output format (csv, duckdb)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for downloaded files",
			},
			&cli.StringFlag{
				Name:    "instruments",
				Aliases: []string{"i"},
				Usage:   "Path to the instrument master CSV for symbol resolution",
			},
		},
		Action: downloadAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the YAML config file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
