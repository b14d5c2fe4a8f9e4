package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	clitools "github.com/gentoomaniac/backup-pool/pkg/cli"
	"github.com/gentoomaniac/backup-pool/pkg/config"
	"github.com/gentoomaniac/backup-pool/pkg/fsutil"
	"github.com/gentoomaniac/backup-pool/pkg/knapsack"
	"github.com/gentoomaniac/backup-pool/pkg/marker"
	"github.com/gentoomaniac/backup-pool/pkg/media"
)

type SpanCmd struct {
	Cushion float64 `help:"Default cushion percentage offered in the prompt" default:"4.0"`
}

// span is the interactive disc-spanning tool. It is used when a day's
// staged data does not fit onto a single disc: the staged files are
// partitioned across as many discs as needed with a user-chosen fit
// algorithm, and the user can retry with a different algorithm until
// the split looks right. It prints rather than logs because it talks
// to a human.
func span(cfg *config.Config, params *SpanCmd) error {
	fmt.Println("")
	fmt.Println("================================================")
	fmt.Println("              backup-pool span tool")
	fmt.Println("================================================")
	fmt.Println("")
	fmt.Println("This tool splits staged data across multiple discs when the data")
	fmt.Println("does not fit onto a single one. Configuration decides which staging")
	fmt.Println("directory is examined and which media type capacity applies.")
	fmt.Println("")
	if ok, err := clitools.YesNo("Continue?", true); err != nil || !ok {
		return err
	}

	nominal, err := cfg.Store.NominalCapacity()
	if err != nil {
		return err
	}
	fmt.Println("")
	fmt.Println("Store configuration:")
	fmt.Println("")
	fmt.Printf("   Staging Directory..: %s\n", cfg.Stage.TargetDir)
	fmt.Printf("   Media Type.........: %s\n", cfg.Store.MediaType)
	fmt.Printf("   Nominal Capacity...: %s\n", media.DisplayBytes(nominal))
	fmt.Println("")
	if ok, err := clitools.YesNo("Is this OK?", true); err != nil || !ok {
		return err
	}

	fmt.Println("")
	fmt.Println("Please wait, indexing the staging directory...")
	dailyDirs, items, totalSize, err := indexUnstored(cfg.Stage.TargetDir)
	if err != nil {
		return err
	}
	if len(dailyDirs) == 0 {
		fmt.Println("All daily staging directories have already been written to disc.")
		return nil
	}

	fmt.Println("")
	fmt.Println("The following daily staging directories have not yet been written to disc:")
	fmt.Println("")
	for _, dir := range dailyDirs {
		fmt.Printf("   %s\n", dir)
	}
	fmt.Println("")
	fmt.Printf("The total size of the data in these directories is %s.\n", media.DisplayBytes(totalSize))
	fmt.Println("")
	if ok, err := clitools.YesNo("Continue?", true); err != nil || !ok {
		return err
	}

	fmt.Println("")
	fmt.Println("Estimates are not perfect, so a cushion percentage is set aside")
	fmt.Println("from the media capacity. A 4% cushion leaves 96% usable.")
	fmt.Println("")
	var usable int64
	for {
		cushion, err := clitools.Float("What cushion percentage?", params.Cushion)
		if err != nil {
			return err
		}
		usable, err = media.UsableCapacity(nominal, cushion)
		if err == nil {
			fmt.Println("")
			fmt.Printf("The real capacity, taking the %.2f%% cushion into account, is %s.\n",
				cushion, media.DisplayBytes(usable))
			break
		}
		fmt.Printf("%v\n", err)
	}
	minimumDiscs := totalSize/usable + 1
	fmt.Printf("It will take at least %d disc(s) to store your %s of data.\n",
		minimumDiscs, media.DisplayBytes(totalSize))
	fmt.Println("")
	if ok, err := clitools.YesNo("Continue?", true); err != nil || !ok {
		return err
	}

	var bins []knapsack.Bin
	for {
		fmt.Println("")
		fmt.Println("Which algorithm should split the data across discs? If you do")
		fmt.Println("not like the result you get a chance to try a different one.")
		fmt.Println("")
		choice, err := clitools.Choice("Which algorithm?", string(knapsack.WorstFit), algorithmNames())
		if err != nil {
			return err
		}
		algorithm, err := knapsack.ParseAlgorithm(choice)
		if err != nil {
			return err
		}

		fmt.Println("")
		fmt.Println("Please wait, generating file lists...")
		bins, err = knapsack.Partition(items, usable, algorithm)
		if err != nil {
			return err
		}

		fmt.Println("")
		fmt.Printf("Using the %q algorithm, the data splits into %d disc(s):\n", algorithm, len(bins))
		fmt.Println("")
		for i, bin := range bins {
			fmt.Printf("Disc %d: %d files, %s, %.2f%% utilization\n",
				i+1, len(bin.Items), media.DisplayBytes(bin.Bytes), bin.Utilization)
		}
		fmt.Println("")
		accepted, err := clitools.YesNo("Accept this solution?", true)
		if err != nil {
			return err
		}
		if accepted {
			break
		}
	}

	if err := writeManifests(cfg.Options.WorkingDir, bins); err != nil {
		return err
	}
	for _, dir := range dailyDirs {
		if err := marker.CreateIn(dir, marker.StoreComplete); err != nil {
			return err
		}
	}
	fmt.Println("")
	fmt.Println("Completed writing all disc manifests.")
	return nil
}

// indexUnstored lists the daily staging dirs still waiting to be
// stored and turns their files into knapsack items. Indicator files
// are not data and stay out of the item pool.
func indexUnstored(stagingDir string) ([]string, []knapsack.Item, int64, error) {
	dailyDirs, err := marker.UnstoredDailyDirs(stagingDir)
	if err != nil {
		return nil, nil, 0, err
	}
	var items []knapsack.Item
	var totalSize int64
	for _, dir := range dailyDirs {
		files, err := fsutil.ListFiles(dir)
		if err != nil {
			return nil, nil, 0, err
		}
		for _, file := range files {
			if marker.IsIndicator(filepath.Base(file.Path)) {
				continue
			}
			items = append(items, knapsack.Item{Path: file.Path, Size: file.Size})
			totalSize += file.Size
		}
	}
	return dailyDirs, items, totalSize, nil
}

func algorithmNames() []string {
	names := make([]string, 0, len(knapsack.Algorithms))
	for _, algorithm := range knapsack.Algorithms {
		names = append(names, string(algorithm))
	}
	return names
}

// writeManifests records each disc's file list in the working
// directory for the burner to consume. Every accepted item ends up in
// exactly one manifest, so nothing from the staging tree can silently
// drop out of the run.
func writeManifests(workingDir string, bins []knapsack.Bin) error {
	if err := os.MkdirAll(workingDir, 0755); err != nil {
		return err
	}
	for i, bin := range bins {
		path := filepath.Join(workingDir, fmt.Sprintf("disc-%03d.list", i+1))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		for _, item := range bin.Items {
			if _, err := fmt.Fprintln(f, item.Path); err != nil {
				f.Close()
				return err
			}
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("manifest", path).Int("files", len(bin.Items)).Msg("wrote disc manifest")
	}
	return nil
}
