// Command schemadump applies the cursor store migrations to an empty
// database and writes the resulting schema to a file.
package main

import (
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/sqlite"
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/sqlite/migrations"
	"context"
	"database/sql"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"log"
	"os"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func newCmd() *cobra.Command {
	var path string
	var debug bool

	cmd := &cobra.Command{
		Use:          "schemadump",
		Short:        "Write the cursor store schema to a file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(path, debug)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "path to dump the schema to")
	cmd.Flags().BoolVar(&debug, "debug", false, "use debug level logging")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func run(path string, debug bool) error {
	log, err := newLogger(debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	log.Info("creating empty database")
	db, err := sql.Open("sqlite3", "file:/dev/null?cache=shared&mode=memory")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	log.Info("applying migrations")
	if err := migrations.Migrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	log.Info("dumping schema")
	if err := dumpSchema(context.Background(), sqlite.New(db), file); err != nil {
		return fmt.Errorf("dump schema: %w", err)
	}

	return nil
}

func dumpSchema(ctx context.Context, db *sqlite.Queries, w io.Writer) error {
	tables, err := db.DumpTables(ctx)
	if err != nil {
		return fmt.Errorf("dump tables: %w", err)
	}

	rest, err := db.DumpRest(ctx)
	if err != nil {
		return fmt.Errorf("dump non-statements content: %w", err)
	}

	schema := append(tables, rest...)

	for _, statement := range schema {
		if statement == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s;\n\n", *statement); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	}

	return nil
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
