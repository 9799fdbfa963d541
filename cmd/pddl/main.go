package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pddl-lang/pddl/core/modelfmt"
	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/model"
	"github.com/pddl-lang/pddl/runtime/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pddl",
		Short:         "Analyze PDDL domain and problem files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newWatchCmd())
	return root
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a PDDL file and print its model summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := analyzeFile(args[0])
			if err != nil {
				return err
			}
			displaySummary(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report diagnostics; non-zero exit on findings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings := 0
			for _, file := range args {
				n, err := checkFile(cmd.OutOrStdout(), file)
				if err != nil {
					return err
				}
				findings += n
			}
			if findings > 0 {
				return fmt.Errorf("%d finding(s)", findings)
			}
			return nil
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Write a binary domain snapshot and print its hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := analyzeFile(args[0])
			if err != nil {
				return err
			}
			if doc.Domain == nil {
				return fmt.Errorf("%s: snapshots cover domain files only", args[0])
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() { _ = out.Close() }()

			hash, err := modelfmt.Write(out, modelfmt.FromDomain(doc.Domain))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blake2b:%x  %s\n", hash, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "domain.pddls", "Snapshot output path")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check a file on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(cmd.OutOrStdout(), args[0])
		},
	}
}

// document bundles one analyzed file: the tree, its resolver, and
// whichever model the text declares.
type document struct {
	Path    string
	Tree    *parser.SyntaxTree
	Index   *lexer.LineIndex
	Domain  *model.Domain
	Problem *model.Problem
}

// analyzeFile parses and extracts one file. Only I/O and the missing
// (define ...) head are errors; everything else lands in diagnostics.
func analyzeFile(path string) (*document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tree, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	index := lexer.NewLineIndex(source)
	domain, problem, err := model.Build(tree, index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &document{
		Path:    path,
		Tree:    tree,
		Index:   index,
		Domain:  domain,
		Problem: problem,
	}, nil
}

// checkFile prints one file's diagnostics and returns the finding count.
func checkFile(w io.Writer, path string) (int, error) {
	doc, err := analyzeFile(path)
	if err != nil {
		return 0, err
	}
	return displayDiagnostics(w, doc), nil
}

// watchFile re-checks the file whenever its editor writes it. Watches the
// directory rather than the file itself: editors commonly replace files on
// save, which would drop a direct watch.
func watchFile(w io.Writer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Initial check so the user sees current state immediately
	if _, err := checkFile(w, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := checkFile(w, path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-stop:
			return nil
		}
	}
}
