package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tedstrazimiri/droneclear/internal/ingest"
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

var (
	ingestSchemaPath string
	ingestOutPath    string
	ingestLegacyEnc  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [source files...]",
	Short: "Convert raw CSV/XLSX component lists into a catalogue JSON file",
	Long: `Classify rows from spreadsheet exports into component categories and
emit a catalogue JSON file shaped by the schema templates.

Examples:
  # Ingest two supplier exports
  dcctl ingest --schema data/drone_parts_schema_v2.json parts1.csv parts2.xlsx

  # CSV files exported by older Windows tools
  dcctl ingest --legacy-encoding parts.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSchemaPath, "schema", "", "schema document path (defaults to the configured path)")
	ingestCmd.Flags().StringVarP(&ingestOutPath, "out", "o", "drone_parts_database.json", "output catalogue file")
	ingestCmd.Flags().BoolVar(&ingestLegacyEnc, "legacy-encoding", false, "decode CSV input as Windows-1252 instead of UTF-8")
}

func runIngest(cmd *cobra.Command, args []string) error {
	schemaPath := ingestSchemaPath
	if schemaPath == "" {
		cfg, err := loadConfigSilent()
		if err != nil {
			return err
		}
		schemaPath = cfg.Schema.Path
	}

	doc, err := schema.NewStore(schemaPath).Read()
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	pipeline, err := ingest.NewPipeline(doc, zapLogger)
	if err != nil {
		return err
	}

	sources := make([]ingest.RowSource, 0, len(args))
	for _, path := range args {
		sources = append(sources, ingest.OpenSource(path, ingestLegacyEnc))
	}

	result, err := pipeline.Run(sources)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result.File, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(ingestOutPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Ingested %d components from %d file(s) into %s\n",
		result.Total, len(args), ingestOutPath)
	for name, count := range result.PerFile {
		fmt.Printf("  %s: %d\n", name, count)
	}
	return nil
}
