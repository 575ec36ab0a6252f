package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tordrt/avroschema"
	"github.com/tordrt/avroschema/internal/avro"
	"github.com/tordrt/avroschema/internal/convert"
)

var (
	schemaFile  string
	dbURL       string
	mysqlURL    string
	sqlitePath  string
	mongoURL    string
	outputFile  string
	outputDir   string
	models      string
	exclude     string
	schemaName  string
	reserved    string
	optionsFile string
	format      string
	strict      bool
	validate    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "avroschema",
	Short: "Compile document model schemas into Avro record schemas",
	Long: `AvroSchema reads model definitions from a YAML, JSON or BSON file, or introspects them
from PostgreSQL, MySQL, SQLite or MongoDB, and writes one Avro record schema per model.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&schemaFile, "schema", "", "Model definition file (.yaml, .yml, .json or .bson)")
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVar(&mongoURL, "mongo-url", "", "MongoDB connection string")
	rootCmd.Flags().StringVarP(&models, "models", "m", "", "Specific models, tables or collections (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&exclude, "exclude", "x", "", "Models to skip (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&schemaName, "schema-name", "s", "", "Database schema (PostgreSQL, default: public) or database name (MySQL, MongoDB)")
	rootCmd.Flags().StringVarP(&reserved, "reserved", "r", "", "Additional reserved field paths to drop (comma-separated)")
	rootCmd.Flags().StringVar(&optionsFile, "options", "", "Conversion options file (YAML or JSON: reserved, strict)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, text or markdown")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory for multi-file output")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Fail when a field type has no Avro mapping")
	rootCmd.Flags().BoolVar(&validate, "validate", false, "Check every generated schema with a strict Avro parser")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-field classification to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sourceURL, err := sourceFromFlags(schemaFile, dbURL, mysqlURL, sqlitePath, mongoURL)
	if err != nil {
		return err
	}

	if outputDir != "" && outputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}

	opts, err := buildOptions(optionsFile, parseList(reserved), strict)
	if err != nil {
		return err
	}
	opts.Logger = logger

	loaded, err := avroschema.LoadModels(ctx, sourceURL, &avroschema.SourceOptions{
		Models:        parseList(models),
		ExcludeModels: parseList(exclude),
		SchemaName:    schemaName,
	})
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}
	logger.Debug("loaded models", zap.String("source", sourceKind(sourceURL)), zap.Int("count", len(loaded)))

	records, err := avroschema.ConvertModels(loaded, opts)
	if records == nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if err != nil {
		logger.Warn("fields emitted without an Avro type", zap.Int("count", len(multierr.Errors(err))))
	}

	if validate {
		if err := validateRecords(records); err != nil {
			return err
		}
	}

	// Single-file output
	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warn("failed to close output file", zap.Error(err))
			}
		}()
		writer = f
	}

	if err := avroschema.FormatSchemas(records, &avroschema.OutputOptions{
		Writer:    writer,
		OutputDir: outputDir,
		Format:    format,
	}); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}

// newLogger builds a stderr logger; stdout is reserved for schema output
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// sourceFromFlags turns exactly one source flag into a source URL
func sourceFromFlags(schemaFile, dbURL, mysqlURL, sqlitePath, mongoURL string) (string, error) {
	var sources []string
	if schemaFile != "" {
		sources = append(sources, schemaFile)
	}
	if dbURL != "" {
		sources = append(sources, dbURL)
	}
	if mysqlURL != "" {
		if !strings.HasPrefix(mysqlURL, "mysql://") {
			mysqlURL = "mysql://" + mysqlURL
		}
		sources = append(sources, mysqlURL)
	}
	if sqlitePath != "" {
		sources = append(sources, "sqlite://"+sqlitePath)
	}
	if mongoURL != "" {
		sources = append(sources, mongoURL)
	}

	switch len(sources) {
	case 0:
		return "", fmt.Errorf("one of --schema, --db-url, --mysql-url, --sqlite, or --mongo-url must be specified")
	case 1:
		return sources[0], nil
	default:
		return "", fmt.Errorf("only one of --schema, --db-url, --mysql-url, --sqlite, or --mongo-url can be specified")
	}
}

// buildOptions loads the options file, if any, and layers the command-line flags on top
func buildOptions(path string, reservedNames []string, strict bool) (*avroschema.Options, error) {
	opts := &avroschema.Options{}
	if path != "" {
		loaded, err := avroschema.LoadOptions(path)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if len(reservedNames) > 0 {
		opts.Reserved = opts.Reserved.Merge(convert.ReservedNames(reservedNames...))
	}
	opts.Strict = opts.Strict || strict

	return opts, nil
}

func validateRecords(records []*avro.Record) error {
	var errs error
	for _, r := range records {
		errs = multierr.Append(errs, avro.Validate(r))
	}
	if errs != nil {
		return fmt.Errorf("schema validation failed: %w", errs)
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}

	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// sourceKind names the source for logging without leaking credentials
func sourceKind(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return "file"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
