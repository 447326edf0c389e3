package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	savesDir := fs.String("saves-dir", "data", "path to match saves directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "deckbuilder-"+ts+".tar.gz")
	}

	if err := ops.ArchiveSaves(*savesDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.UnpackSaves(*archive, *target)
}

// drill runs a full backup/restore cycle against a scratch directory
// and verifies the restored tree matches the source.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	savesDir := fs.String("saves-dir", "data", "path to match saves directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "deckbuilder-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "deckbuilder-drill-restore-"+ts)

	if err := ops.ArchiveSaves(*savesDir, archive); err != nil {
		return err
	}
	if err := ops.UnpackSaves(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := ops.DirDigest(*savesDir)
	if err != nil {
		return err
	}
	restoreDigest, err := ops.DirDigest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  deckbuilder-ops backup  --saves-dir data --out backups/saves.tar.gz")
	fmt.Println("  deckbuilder-ops restore --archive backups/saves.tar.gz --target-dir data-restored")
	fmt.Println("  deckbuilder-ops drill   --saves-dir data --work-dir /tmp")
}
