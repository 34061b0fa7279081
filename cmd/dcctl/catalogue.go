package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tedstrazimiri/droneclear/internal/catalogue"
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

var (
	exportOutPath   string
	exportCategory  string
	resetSchemaPath string
	resetConfirmed  bool
)

var importCmd = &cobra.Command{
	Use:   "import <catalogue.json>",
	Short: "Bulk-upsert components and drone models from a catalogue file",
	Long: `Load a catalogue JSON file into the database. Components are matched
by PID: existing records are overwritten, new ones created. Entries in
unknown categories are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the live database back out as a catalogue file",
	RunE:  runExport,
}

var resetGoldenCmd = &cobra.Command{
	Use:   "reset-golden",
	Short: "Wipe the catalogue and reseed from the golden schema document",
	Long: `Delete every component, drone model and category, then reseed from
the schema document. Build guides and sessions are untouched. Requires --yes.`,
	RunE: runResetGolden,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutPath, "out", "o", "drone_parts_database.json", "output catalogue file")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "restrict export to a single category slug")

	resetGoldenCmd.Flags().StringVar(&resetSchemaPath, "schema", "", "schema document path (defaults to the configured path)")
	resetGoldenCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the destructive reset")
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var file catalogue.File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalogue file: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	ctx := context.Background()

	// The import service expects flat objects carrying their category slug
	parts := []map[string]interface{}{}
	for slug, list := range file.Components {
		for _, obj := range list {
			obj["category"] = slug
			parts = append(parts, obj)
		}
	}

	report, err := e.services.Catalogue.Import(ctx, parts)
	if err != nil {
		return err
	}

	modelsCreated, modelsUpdated, err := e.services.Catalogue.ImportModels(ctx, file.DroneModels)
	if err != nil {
		return err
	}

	fmt.Printf("Components: %d created, %d updated, %d rejected\n",
		report.Created, report.Updated, len(report.Errors))
	for _, impErr := range report.Errors {
		fmt.Printf("  entry %d (%s): %s\n", impErr.Index, impErr.PID, impErr.Error)
	}
	fmt.Printf("Drone models: %d created, %d updated\n", modelsCreated, modelsUpdated)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	file, err := e.services.Catalogue.Export(context.Background(), exportCategory)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOutPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	total := 0
	for _, list := range file.Components {
		total += len(list)
	}
	fmt.Printf("Exported %d components across %d categories to %s\n",
		total, len(file.Components), exportOutPath)
	return nil
}

func runResetGolden(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("reset-golden wipes the catalogue; rerun with --yes to confirm")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}

	schemaPath := resetSchemaPath
	if schemaPath == "" {
		schemaPath = e.cfg.Schema.Path
	}
	doc, err := schema.NewStore(schemaPath).Read()
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	report, err := e.services.Catalogue.ResetToGolden(context.Background(), doc)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d components and %d drone models\n",
		report.DeletedComponents, report.DeletedModels)
	fmt.Printf("Seeded %d categories, %d components, %d drone models\n",
		report.Categories, report.Components, report.Models)
	return nil
}
