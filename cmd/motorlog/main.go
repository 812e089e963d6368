// Package main provides the MotorLog command line interface: schema
// migration, vehicle data export and import, and scheduled backups.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/motorlog/motorlog/internal/backup"
	"github.com/motorlog/motorlog/internal/crypto"
	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/interchange"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logging.Init(os.Stderr, os.Getenv("MOTORLOG_LOG_LEVEL"))

	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "backup":
		err = runBackup(os.Args[2:])
	case "version":
		fmt.Printf("motorlog v%s\n", Version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: motorlog <command> [flags]

commands:
  migrate  -data <dir>                                apply pending schema migrations
  export   -data <dir> -owner <id> -out <file> [-vehicles id,id] [-attachments] [-archive] [-passphrase p]
  import   -data <dir> -owner <id> -in <file> [-dry-run] [-limit n] [-passphrase p]
  backup   -data <dir> -owner <id> [-dir <dir>] [-interval manual|daily|weekly|monthly] [-retention n] [-attachments] [-passphrase p]
  version`)
}

func openDB(dataDir string) (*db.DB, error) {
	database, err := db.Open(dataDir)
	if err != nil {
		return nil, err
	}
	migrator := db.NewEmbeddedMigrator(database.DB)
	if err := migrator.Initialize(); err != nil {
		database.Close()
		return nil, err
	}
	if err := migrator.Up(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory")
	fs.Parse(args)

	database, err := db.Open(*dataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	migrator := db.NewEmbeddedMigrator(database.DB)
	if err := migrator.Initialize(); err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		return err
	}
	version, err := migrator.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Printf("schema at version %d\n", version)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory")
	owner := fs.String("owner", "", "owner id")
	out := fs.String("out", "", "output file")
	vehicles := fs.String("vehicles", "", "comma-separated vehicle ids (default: whole fleet)")
	attachments := fs.Bool("attachments", false, "include attachment metadata")
	archive := fs.Bool("archive", false, "write a checksummed tar.gz instead of plain JSON")
	passphrase := fs.String("passphrase", "", "encrypt the archive (implies -archive)")
	fs.Parse(args)

	if *owner == "" || *out == "" {
		return fmt.Errorf("export requires -owner and -out")
	}

	database, err := openDB(*dataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	opts := interchange.ExportOptions{IncludeAttachments: *attachments}
	for _, id := range strings.Split(*vehicles, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.VehicleIDs = append(opts.VehicleIDs, models.UUID(id))
		}
	}

	exporter := interchange.NewExporter(database, interchange.DefaultConfig())
	result, err := exporter.Export(context.Background(), models.UUID(*owner), opts)
	if err != nil {
		return err
	}

	payload := &interchange.Payload{
		Version:    interchange.PayloadVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Vehicles:   result.Data,
	}
	if *passphrase != "" {
		if err := interchange.WriteSealedArchive(*out, payload, *passphrase); err != nil {
			return err
		}
	} else if *archive {
		if err := interchange.WriteArchive(*out, payload); err != nil {
			return err
		}
	} else {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			return err
		}
	}

	info, err := os.Stat(*out)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d vehicle(s) to %s (%s) in %.2fs\n",
		result.Statistics.VehicleCount, *out,
		humanize.IBytes(uint64(info.Size())),
		result.Statistics.ProcessingTimeSeconds)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory")
	owner := fs.String("owner", "", "owner id")
	in := fs.String("in", "", "input file (JSON or tar.gz archive)")
	dryRun := fs.Bool("dry-run", false, "validate and report without persisting")
	limit := fs.Int("limit", 0, "process at most n vehicles (0 = all)")
	passphrase := fs.String("passphrase", "", "decrypt an encrypted archive")
	fs.Parse(args)

	if *owner == "" || *in == "" {
		return fmt.Errorf("import requires -owner and -in")
	}

	database, err := openDB(*dataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	raw, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	cfg := interchange.DefaultConfig()

	var payload *interchange.Payload
	switch {
	case crypto.IsSealed(raw):
		if *passphrase == "" {
			return fmt.Errorf("%s is encrypted, pass -passphrase", *in)
		}
		payload, err = interchange.ReadSealedArchive(*in, *passphrase)
		if err != nil {
			return err
		}
	case strings.HasSuffix(*in, ".tar.gz") || strings.HasSuffix(*in, ".tgz"):
		if err := interchange.CheckPayload(raw, cfg); err != nil {
			return err
		}
		payload, err = interchange.ReadArchive(*in)
		if err != nil {
			return err
		}
	default:
		if err := interchange.CheckPayload(raw, cfg); err != nil {
			return err
		}
		payload = &interchange.Payload{}
		if err := json.Unmarshal(raw, payload); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}

	importer := interchange.NewImporter(database, cfg)
	result, err := importer.Import(context.Background(), payload, models.UUID(*owner),
		interchange.ImportOptions{DryRun: *dryRun, Limit: *limit})
	if err != nil {
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, " -", msg)
		}
		return err
	}

	mode := "imported"
	if *dryRun {
		mode = "validated (dry run)"
	}
	fmt.Printf("%s %d vehicle(s) in %.2fs, peak memory %.1f MB\n",
		mode, result.Statistics.VehiclesImported,
		result.Statistics.ProcessingTimeSeconds,
		result.Statistics.MemoryPeakMB)
	if result.Statistics.ReferenceEntitiesCreated > 0 {
		fmt.Printf("created %d reference entries\n", result.Statistics.ReferenceEntitiesCreated)
	}
	return nil
}

func runBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dataDir := fs.String("data", "data", "data directory")
	owner := fs.String("owner", "", "owner id")
	dir := fs.String("dir", "backups", "backup directory")
	interval := fs.String("interval", "manual", "manual, daily, weekly or monthly")
	retention := fs.Int("retention", 0, "archives to keep (0 = unlimited)")
	attachments := fs.Bool("attachments", false, "include attachment metadata")
	passphrase := fs.String("passphrase", "", "encrypt backup archives")
	fs.Parse(args)

	if *owner == "" {
		return fmt.Errorf("backup requires -owner")
	}

	database, err := openDB(*dataDir)
	if err != nil {
		return err
	}
	defer database.Close()

	scheduler := backup.NewScheduler(
		interchange.NewExporter(database, interchange.DefaultConfig()),
		models.UUID(*owner),
		backup.Config{
			Interval:           backup.Interval(*interval),
			RetentionCount:     *retention,
			IncludeAttachments: *attachments,
			Dir:                *dir,
			Passphrase:         *passphrase,
		})

	if backup.Interval(*interval) == backup.IntervalManual {
		path, err := scheduler.RunOnce(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("backup written to %s\n", path)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("backing up every %s to %s, ctrl-c to stop\n", *interval, *dir)
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
