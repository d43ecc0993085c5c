package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/display"
	"github.com/backmassage/brightmask/internal/logging"
	"github.com/backmassage/brightmask/internal/probe"
	"github.com/backmassage/brightmask/internal/term"
)

// fileRow holds the probed per-file data for the analysis table.
type fileRow struct {
	Name       string
	Format     string
	Resolution string
	Megapixels float64
	Model      string
	Size       int64
}

// Analyze discovers eligible images, reads each header, and prints a
// tabular dimension/size report with statistical outlier highlighting.
// No masks are written.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	files, err := Discover(cfg.InputDir, cfg.MaskSuffix)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return err
	}
	if len(files) == 0 {
		log.Warn("No eligible images found in %s", cfg.InputDir)
		return nil
	}

	total := len(files)
	log.Info("Analyzing %d images in %s …", total, cfg.InputDir)
	fmt.Println()

	isTTY := term.IsTerminal(os.Stdout)
	var rows []fileRow
	var skipped int
	var mpVals, sizeVals []float64

	for i, path := range files {
		if ctx.Err() != nil {
			if isTTY {
				clearProgress()
			}
			log.Warn("Interrupted")
			return nil
		}

		printProgress(isTTY, i+1, total, skipped, filepath.Base(path))

		pr, err := probe.Probe(ctx, path)
		if err != nil {
			skipped++
			if isTTY {
				clearProgress()
			}
			log.Warn("Skip (unreadable header): %s", filepath.Base(path))
			continue
		}

		row := fileRow{
			Name:       filepath.Base(path),
			Format:     pr.Format,
			Resolution: pr.Resolution(),
			Megapixels: pr.Megapixels(),
			Model:      pr.ColorModel,
			Size:       pr.Size,
		}
		rows = append(rows, row)
		if row.Megapixels > 0 {
			mpVals = append(mpVals, row.Megapixels)
		}
		if row.Size > 0 {
			sizeVals = append(sizeVals, float64(row.Size))
		}
	}

	if isTTY {
		clearProgress()
	}

	if len(rows) == 0 {
		log.Warn("No images could be probed")
		return nil
	}

	mpStats := computeStats(mpVals)
	sizeStats := computeStats(sizeVals)

	printAnalysisTable(rows, mpStats, sizeStats)
	printAnalysisSummary(log, rows, mpStats, sizeStats)
	return nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid || v <= 0 {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func printAnalysisTable(rows []fileRow, mpStats, sizeStats iqrBounds) {
	nameW := len("File")
	fmtW := len("Format")
	resW := len("Resolution")
	mpW := len("MPix")
	modelW := len("Color")
	sizeW := len("Size")

	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
		fmtW = max(fmtW, len(r.Format))
		resW = max(resW, len(r.Resolution))
		mpW = max(mpW, len(fmtMegapixels(r.Megapixels)))
		modelW = max(modelW, len(r.Model))
		sizeW = max(sizeW, len(display.FormatBytes(r.Size)))
	}
	nameW = min(nameW, 50)

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		nameW, "File",
		fmtW, "Format",
		resW, "Resolution",
		mpW, "MPix",
		modelW, "Color",
		sizeW, "Size",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Println(header)
	fmt.Println(separator)

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}

		mpClass := mpStats.classify(r.Megapixels)
		sizeClass := sizeStats.classify(float64(r.Size))
		flagStr := formatFlag(worstFlag(mpClass, sizeClass))

		// Pad the plain text first, then wrap in ANSI color, so escape
		// bytes do not count toward the column width.
		mpCell := colorPad(fmtMegapixels(r.Megapixels), mpW, mpClass)
		sizeCell := colorPad(display.FormatBytes(r.Size), sizeW, sizeClass)

		fmt.Printf("  %-*s  %-*s  %-*s  %s  %-*s  %s  %s\n",
			nameW, name,
			fmtW, r.Format,
			resW, r.Resolution,
			mpCell,
			modelW, r.Model,
			sizeCell,
			flagStr,
		)
	}
	fmt.Println()
}

func printAnalysisSummary(log *logging.Logger, rows []fileRow, mpStats, sizeStats iqrBounds) {
	outliers, extremes := countFlags(rows, mpStats, sizeStats)

	log.Info("Analyzed %d images", len(rows))
	if mpStats.valid {
		log.Info("  Megapixel IQR: %.2f – %.2f (outlier < %.2f or > %.2f)",
			mpStats.q1, mpStats.q3, mpStats.outlierLo, mpStats.outlierHi)
	}
	if sizeStats.valid {
		log.Info("  File size IQR: %s – %s",
			display.FormatBytes(int64(sizeStats.q1)), display.FormatBytes(int64(sizeStats.q3)))
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func countFlags(rows []fileRow, mpStats, sizeStats iqrBounds) (outliers, extremes int) {
	for _, r := range rows {
		switch worstFlag(mpStats.classify(r.Megapixels), sizeStats.classify(float64(r.Size))) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}
	return outliers, extremes
}

func fmtMegapixels(mp float64) string {
	if mp <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", mp)
}

func worstFlag(classes ...string) string {
	worst := ""
	for _, c := range classes {
		if c == "extreme" {
			return "extreme"
		}
		if c == "outlier" {
			worst = "outlier"
		}
	}
	return worst
}

func formatFlag(flag string) string {
	switch flag {
	case "extreme":
		return term.Red + "[!]" + term.NC
	case "outlier":
		return term.Orange + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps it in ANSI color.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Red + padded + term.NC
	case "outlier":
		return term.Orange + padded + term.NC
	default:
		return padded
	}
}

// printProgress shows a live probe counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op.
func printProgress(isTTY bool, current, total, skipped int, name string) {
	if !isTTY {
		return
	}
	pct := current * 100 / total
	status := fmt.Sprintf("  Probing [%d/%d] %d%% ", current, total, pct)
	if skipped > 0 {
		status += fmt.Sprintf("(%d skipped) ", skipped)
	}

	maxName := 40
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}
	status += name

	// Pad to 80 chars to overwrite previous longer lines, then \r.
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(os.Stdout, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress() {
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
