// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catena-lang/catena"
	"github.com/catena-lang/catena/parser"
	"github.com/catena-lang/catena/types"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "catena",
		Short:         "Stack-effect type inference for concatenative pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace constraints and unifiers to stderr")
	root.AddCommand(inferCmd(), wordsCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "catena:", err)
		os.Exit(1)
	}
}

func inferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer [word|signature...]",
		Short: "Infer the composite stack effect of a pipeline",
		Long: "Infer the composite stack effect of a pipeline.\n\n" +
			"Each argument is either a builtin word (see `catena words`) or an\n" +
			"inline signature such as \"('a -> 'a 'a)\".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := catena.NewEngine()
			if verbose {
				eng.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			env := catena.CoreEnv()
			fns := make([]catena.Function, len(args))
			for i, arg := range args {
				if strings.HasPrefix(arg, "(") {
					rel, err := parser.Parse(arg)
					if err != nil {
						return err
					}
					fns[i] = catena.Declared(arg, rel)
					continue
				}
				w, ok := env.Lookup(arg)
				if !ok {
					return fmt.Errorf("unknown word %s", arg)
				}
				fns[i] = w
			}
			result, err := eng.Compose(fns...)
			if err != nil {
				return err
			}
			if err := catena.CheckWellTyped(result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), types.TermString(result))
			return nil
		},
	}
}

func wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List builtin words and their stack effects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := catena.CoreEnv()
			for _, name := range env.Names() {
				w, _ := env.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, types.TermString(w.FxnType()))
			}
			return nil
		},
	}
}
