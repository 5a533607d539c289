package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/lenient/pkg/adapters/lifecycle"
	"github.com/aretw0/lenient/pkg/converters"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/transcode"
)

var watchLang string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Print the lenient view of a file every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		lang, err := resolveLanguage(watchLang, path)
		if err != nil {
			return err
		}
		set, err := converters.Default().Converters(lang)
		if err != nil {
			return err
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		file, err := rt.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := file.Events(ctx)
		if err != nil {
			return err
		}
		source := lifecycle.NewSource(events, core.FileChanged)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		view := func() {
			text, err := readLenient(file, set)
			if err != nil {
				rt.Logger.Warn("couldn't convert to lenient", "path", path, "error", err)
				return
			}
			fmt.Fprint(out, text)
		}

		view()
		rt.Logger.Info("watching", "path", file.Path())
		for range source.Events() {
			fmt.Fprintf(out, "--- %s changed ---\n", path)
			view()
		}
		return ignoreCanceled(ctx.Err())
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchLang, "lang", "", "Language (js or json), inferred from the extension by default")
	rootCmd.AddCommand(watchCmd)
}

func readLenient(file core.File, set core.ConverterSet) (string, error) {
	mapped := transcode.NewMappedFile(file, set, transcode.WriteHooks{})
	r, err := mapped.CreateReadStream()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
