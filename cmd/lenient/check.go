package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/lenient/pkg/converters"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/transcode"
)

var checkLang string

var errCheckFailed = errors.New("round trip check failed")

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Verify that files survive a lenient round trip",
	Long: `Check converts each canonical file to lenient and back, then converts the
result to lenient again. A file passes when the second lenient rendering is
identical to the first and normalizing the lenient text leaves it unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := converters.Default()
		results := make([]error, len(args))

		var g errgroup.Group
		for i, path := range args {
			g.Go(func() error {
				results[i] = checkFile(registry, path)
				return nil
			})
		}
		_ = g.Wait()

		failed := false
		out := cmd.OutOrStdout()
		for i, path := range args {
			if results[i] != nil {
				failed = true
				fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), path, results[i])
			} else {
				fmt.Fprintf(out, "%s %s\n", color.GreenString("OK"), path)
			}
		}
		if failed {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkLang, "lang", "", "Language (js or json), inferred from the extension by default")
	rootCmd.AddCommand(checkCmd)
}

func checkFile(registry core.Provider, path string) error {
	lang, err := resolveLanguage(checkLang, path)
	if err != nil {
		return err
	}
	set, err := registry.Converters(lang)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	first, err := transcode.Convert(transcode.ToLenient, set.ToLenient, string(data))
	if err != nil {
		return err
	}
	canonical, err := transcode.Convert(transcode.ToCanonical, set.ToCanonical, first)
	if err != nil {
		return err
	}
	second, err := transcode.Convert(transcode.ToLenient, set.ToLenient, canonical)
	if err != nil {
		return err
	}
	if first != second {
		return errors.New("lenient rendering is not stable")
	}
	again, err := transcode.Convert(transcode.ToLenient, set.LenientToLenient, first)
	if err != nil {
		return err
	}
	if again != first {
		return errors.New("lenient normalization is not idempotent")
	}
	return nil
}
