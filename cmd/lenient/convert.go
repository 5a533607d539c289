package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/lenient/pkg/adapters/fs"
	"github.com/aretw0/lenient/pkg/converters"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/transcode"
)

var (
	convertTo    string
	convertLang  string
	convertWrite bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file...]",
	Short: "Convert files between canonical and lenient syntax",
	Long: `Convert prints each file in the target dialect. With --write the file is
rewritten in place through the transactional write path: if conversion fails
the file is left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir transcode.Direction
		switch convertTo {
		case "lenient":
			dir = transcode.ToLenient
		case "canonical":
			dir = transcode.ToCanonical
		default:
			return fmt.Errorf("--to must be lenient or canonical, got %q", convertTo)
		}

		registry := converters.Default()
		if !convertWrite {
			// Printing keeps file order.
			for _, path := range args {
				out, err := convertFile(registry, path, dir)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", path)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		for _, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return rewriteFile(registry, path, dir)
			})
		}
		return g.Wait()
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "lenient", "Target dialect: lenient or canonical")
	convertCmd.Flags().StringVar(&convertLang, "lang", "", "Language (js or json), inferred from the extension by default")
	convertCmd.Flags().BoolVarP(&convertWrite, "write", "w", false, "Rewrite files in place")
	rootCmd.AddCommand(convertCmd)
}

func converterFor(registry core.Provider, path string, dir transcode.Direction) (core.ConvertFunc, error) {
	lang, err := resolveLanguage(convertLang, path)
	if err != nil {
		return nil, err
	}
	set, err := registry.Converters(lang)
	if err != nil {
		return nil, err
	}
	if dir == transcode.ToLenient {
		return set.ToLenient, nil
	}
	return set.ToCanonical, nil
}

func convertFile(registry core.Provider, path string, dir transcode.Direction) (string, error) {
	fn, err := converterFor(registry, path, dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	out, err := transcode.Convert(dir, fn, string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func rewriteFile(registry core.Provider, path string, dir transcode.Direction) error {
	fn, err := converterFor(registry, path, dir)
	if err != nil {
		return err
	}
	file, err := fs.NewFile(fs.Config{Path: path, Atomic: true, Logger: slog.Default()})
	if err != nil {
		return err
	}
	defer file.Close()

	r, err := file.CreateReadStream()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	w := transcode.WriteThrough(file.CreateWriteStream, fn, transcode.WriteHooks{
		OnSuccess: func() { slog.Info("rewrote file", "path", path, "to", dir) },
	})
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
