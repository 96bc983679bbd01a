package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"qirlower"
)

var (
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var (
		profilePath = flag.String("profile", "", "target profile YAML (default: built-in base profile)")
		outPath     = flag.String("o", "", "write QIR module here instead of stdout")
		bodyOnly    = flag.Bool("body-only", false, "emit instruction lines only, no module wrapper")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qirlower [flags] <program-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log := buildLogger(*verbose)
	defer log.Sync() //nolint:errcheck

	if err := run(flag.Arg(0), *profilePath, *outPath, *bodyOnly, log); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func buildLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup:", err)
		os.Exit(1)
	}
	return log
}

func run(inPath, profilePath, outPath string, bodyOnly bool, log *zap.Logger) error {
	text, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	program, err := qirlower.Parse(string(text))
	if err != nil {
		return err
	}
	log.Info("parsed program", zap.Int("instructions", len(program)))

	profile := qirlower.BaseProfile()
	if profilePath != "" {
		profile, err = qirlower.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		log.Info("loaded target profile", zap.String("name", profile.Name))
	}

	lowered, err := qirlower.NewLowerer(qirlower.WithLogger(log)).Lower(program)
	if err != nil {
		return err
	}
	if err := profile.Validate(lowered); err != nil {
		return err
	}

	var out string
	if bodyOnly {
		out, err = qirlower.EmitBody(lowered)
	} else {
		out, err = qirlower.EmitModule(lowered)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			return err
		}
	} else {
		fmt.Print(out)
	}

	fmt.Fprintln(os.Stderr, summaryStyle.Render(
		fmt.Sprintf("lowered %d -> %d instructions (profile %s)", len(program), len(lowered), profile.Name)))
	return nil
}
