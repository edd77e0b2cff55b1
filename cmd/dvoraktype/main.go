// Package main provides the CLI entrypoint for dvoraktype.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/torusk/Dvorak-Typing/internal/config"
	"github.com/torusk/Dvorak-Typing/internal/keyboard"
	"github.com/torusk/Dvorak-Typing/internal/library"
	"github.com/torusk/Dvorak-Typing/internal/model"
	"github.com/torusk/Dvorak-Typing/internal/pickerui"
	"github.com/torusk/Dvorak-Typing/internal/stats"
	"github.com/torusk/Dvorak-Typing/internal/textsource"
	"github.com/torusk/Dvorak-Typing/internal/tui"
)

const (
	defaultWidthPct = 0.70
	defaultPreview  = true
	defaultRemap    = false
)

var (
	practiceText     string
	practiceExercise string
	practiceWidth    float64
	practiceRemap    bool
	practicePreview  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dvoraktype",
		Short:         "TUI Dvorak typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceText, "text", "", "exercise text file (default: bundled exercises)")
	rootCmd.Flags().StringVar(&practiceExercise, "exercise", "", "practice a stored exercise by name")
	rootCmd.Flags().Float64Var(&practiceWidth, "width", defaultWidthPct, "line width as a fraction of the terminal (0-1)")
	rootCmd.Flags().BoolVar(&practiceRemap, "remap", defaultRemap, "remap QWERTY key presses to Dvorak characters")
	rootCmd.Flags().BoolVar(&practicePreview, "preview", defaultPreview, "show previous and next line context")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newLayoutCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)
	applyStringConfig(cmd, "exercise", &practiceExercise, fileCfg.Practice.Exercise)
	applyFloatConfig(cmd, "width", &practiceWidth, fileCfg.Practice.Width)
	applyBoolConfig(cmd, "remap", &practiceRemap, fileCfg.Practice.Remap)
	applyBoolConfig(cmd, "preview", &practicePreview, fileCfg.Practice.Preview)

	cfg := model.Config{
		TextPath: practiceText,
		Exercise: practiceExercise,
		WidthPct: practiceWidth,
		Remap:    practiceRemap,
		Preview:  practicePreview,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	exercise, ok, err := resolveExercise(cfg)
	if err != nil {
		return err
	}
	if !ok {
		// Picker aborted without a selection.
		return nil
	}

	m := tui.NewModel(cfg, exercise)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if done, ok := final.(*tui.Model); ok {
		if sum, ok := done.Summary(); ok {
			if err := stats.RenderSummary(cmd.OutOrStdout(), sum); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	return nil
}

// resolveExercise picks the text to practice: a stored exercise by name, a
// user-supplied file, or the bundled default; multiple blocks without an
// explicit choice go through the picker.
func resolveExercise(cfg model.Config) (model.Exercise, bool, error) {
	if cfg.Exercise != "" {
		lib, err := library.Open(config.DefaultDBPath())
		if err != nil {
			return model.Exercise{}, false, fmt.Errorf("failed to open library: %w", err)
		}
		defer func() {
			if cerr := lib.Close(); cerr != nil {
				logErrf("failed to close library: %v\n", cerr)
			}
		}()
		ex, err := lib.GetExercise(context.Background(), cfg.Exercise)
		if err != nil {
			return model.Exercise{}, false, fmt.Errorf("failed to load exercise: %w", err)
		}
		return ex, true, nil
	}

	var blocks []model.Exercise
	if cfg.TextPath != "" {
		loaded, err := textsource.LoadFile(cfg.TextPath)
		if err != nil {
			return model.Exercise{}, false, err
		}
		blocks = loaded
	} else {
		blocks = textsource.Default()
	}
	if len(blocks) == 1 {
		return blocks[0], true, nil
	}
	return pickExercise(blocks)
}

func pickExercise(blocks []model.Exercise) (model.Exercise, bool, error) {
	picker := pickerui.NewModel(blocks)
	program := tea.NewProgram(picker, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return model.Exercise{}, false, fmt.Errorf("failed to run picker: %w", err)
	}
	done, ok := final.(*pickerui.Model)
	if !ok {
		return model.Exercise{}, false, fmt.Errorf("unexpected picker model")
	}
	choice, ok := done.Choice()
	if !ok {
		return model.Exercise{}, false, nil
	}
	return choice, true, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the exercise library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import exercise blocks from a text file",
		Args:  cobra.ExactArgs(1),
		RunE:  runLibraryImportCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored exercises",
		Args:  cobra.NoArgs,
		RunE:  runLibraryListCmd,
	})
	return cmd
}

func runLibraryImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	blocks, err := textsource.LoadFile(path)
	if err != nil {
		return err
	}
	lib, err := library.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	n, err := lib.ImportExercises(context.Background(), blocks, path)
	if err != nil {
		return fmt.Errorf("failed to import exercises: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exercise(s) from %s\n", n, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runLibraryListCmd(cmd *cobra.Command, _ []string) error {
	lib, err := library.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	infos, err := lib.ListExercises(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(infos) == 0 {
		logErrln("No stored exercises. Import with: dvoraktype library import <file>")
		return nil
	}
	for _, info := range infos {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %5d words  %s\n", info.Name, info.Words, info.SourcePath); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the Dvorak layout reference",
		Args:  cobra.NoArgs,
		RunE:  runLayoutCmd,
	}
}

func runLayoutCmd(cmd *cobra.Command, _ []string) error {
	width := terminalWidth()
	for _, row := range keyboard.Rows() {
		var b strings.Builder
		for i, base := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			shifted := keyboard.Shifted(base)
			if shifted != 0 {
				b.WriteString(fmt.Sprintf("%c/%c", base, shifted))
			} else {
				b.WriteString(fmt.Sprintf(" %c ", base))
			}
		}
		line := b.String()
		pad := (width - len([]rune(line))) / 2
		if pad < 0 {
			pad = 0
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat(" ", pad)+line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dvoraktype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# text = ""          # Exercise text file (default: bundled exercises)
# exercise = ""      # Stored exercise name
# width = %.2f       # Line width as a fraction of the terminal (0-1)
# remap = %t         # Remap QWERTY key presses to Dvorak characters
# preview = %t       # Show previous and next line context
`,
		defaultWidthPct,
		defaultRemap,
		defaultPreview,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.WidthPct <= 0 || cfg.WidthPct > 1 {
		return fmt.Errorf("--width must be between 0 and 1")
	}
	if cfg.Exercise != "" && cfg.TextPath != "" {
		return fmt.Errorf("--exercise and --text are mutually exclusive")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
