package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/lenient/pkg/adapters/memory"
	"github.com/aretw0/lenient/pkg/core"
)

var (
	openLang string
	openEdit string
	openSave bool
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Open a file in lenient mode the way an editor would",
	Long: `Open attaches the file to an in-memory editor, switches it to the lenient
grammar and prints the buffer. With --edit the buffer is replaced by the
content of another file (written in lenient syntax) and, with --save, saved
back through the lenient pipeline. Failures are printed as notifications.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		lang, err := resolveLanguage(openLang, path)
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

		editor, err := memory.NewEditor(file, canonicalGrammar(lang))
		if err != nil {
			return err
		}
		ws := memory.NewWorkspace()
		ws.Open(editor)

		if err := rt.Subsystem.Activate(ws); err != nil {
			return err
		}
		// The CLI exits right after, so documents are left as they are.
		defer func() {
			ws.SetUnloading(true)
			rt.Subsystem.Deactivate()
		}()

		editor.SetGrammar(lenientGrammar(lang))
		out := cmd.OutOrStdout()

		if openEdit != "" {
			data, err := os.ReadFile(openEdit)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", openEdit, err)
			}
			editor.SetText(string(data))
			if openSave {
				if err := editor.Save(); err != nil {
					rt.Logger.Warn("save failed", "path", path, "error", err)
				}
			}
		}

		if rt.Subsystem.IsLenient(editor) {
			fmt.Fprint(out, editor.Text())
		} else {
			fmt.Fprintf(out, "%s %s is shown in canonical mode\n", color.YellowString("note:"), path)
		}

		notes := rt.Notifier.Notifications()
		for _, n := range notes {
			fmt.Fprintf(out, "%s %s: %s\n", color.RedString("error:"), n.Message(), n.Options().Detail)
		}
		if len(notes) > 0 {
			return fmt.Errorf("%d notification(s) raised", len(notes))
		}
		return nil
	},
}

func init() {
	openCmd.Flags().StringVar(&openLang, "lang", "", "Language (js or json), inferred from the extension by default")
	openCmd.Flags().StringVar(&openEdit, "edit", "", "Replace the buffer with the content of this file")
	openCmd.Flags().BoolVar(&openSave, "save", false, "Save the buffer after --edit")
	rootCmd.AddCommand(openCmd)
}

func canonicalGrammar(lang core.Language) core.Grammar {
	if lang == core.LanguageJSON {
		return core.Grammar{ScopeName: core.ScopeJSON, Name: "JSON"}
	}
	return core.Grammar{ScopeName: core.ScopeJS, Name: "JavaScript"}
}

func lenientGrammar(lang core.Language) core.Grammar {
	if lang == core.LanguageJSON {
		return core.Grammar{ScopeName: core.ScopeLenientJSON, Name: "Lenient JSON"}
	}
	return core.Grammar{ScopeName: core.ScopeLenientJS, Name: "Lenient JavaScript"}
}
