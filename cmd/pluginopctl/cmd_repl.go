package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/core-quic/pluginop/pkg/dispatch"
	"github.com/core-quic/pluginop/pkg/operation"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell: load modules, inspect the operation table, dispatch calls",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// replSession holds state across repl commands: the accumulated module
// list and the handler built from it, rebuilt whenever the list changes.
type replSession struct {
	ctx     context.Context
	names   []string
	handler *dispatch.Handler
	closer  func() error
}

func (s *replSession) rebuild() error {
	prevCloser := s.closer
	if len(s.names) == 0 {
		s.handler, s.closer = nil, nil
		if prevCloser != nil {
			return prevCloser()
		}
		return nil
	}
	h, closer, err := buildHandler(s.ctx, s.names)
	if err != nil {
		if closer != nil {
			closer()
		}
		return err
	}
	if prevCloser != nil {
		prevCloser()
	}
	s.handler, s.closer = h, closer
	return nil
}

// close releases the session's current Emitter sinks, if any.
func (s *replSession) close() {
	if s.closer != nil {
		s.closer()
	}
}

// runRepl implements a line-oriented command shell. Unlike cmd_run's
// interactive mode, this isn't proxying a PTY to a child process byte for
// byte, so it has no use for term.MakeRaw; term.IsTerminal is enough to
// decide whether to print the banner and prompt.
func runRepl(cmd *cobra.Command, args []string) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("pluginopctl repl. Commands: load <module>, ops, call <operation> [kind:value ...], quit")
	}

	sess := &replSession{ctx: context.Background()}
	defer sess.close()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "load":
			if len(fields) != 2 {
				fmt.Println("usage: load <module>")
				continue
			}
			if _, err := lookupDemoModule(fields[1]); err != nil {
				fmt.Println("error:", err)
				continue
			}
			sess.names = append(sess.names, fields[1])
			if err := sess.rebuild(); err != nil {
				fmt.Println("error:", err)
				sess.names = sess.names[:len(sess.names)-1]
				continue
			}
			fmt.Printf("loaded %q (modules now: %v)\n", fields[1], sess.names)
		case "ops":
			if sess.handler == nil {
				fmt.Println("no modules loaded")
				continue
			}
			for _, anchor := range []operation.Anchor{operation.Before, operation.Replace, operation.After} {
				for _, op := range allKnownOperations() {
					for _, m := range sess.handler.Modules() {
						if m.Provides(op, anchor) {
							fmt.Printf("%-7s %-28s %s\n", anchor, op, m.Name)
						}
					}
				}
			}
		case "call":
			if len(fields) < 2 {
				fmt.Println("usage: call <operation> [kind:value ...]")
				continue
			}
			if sess.handler == nil {
				fmt.Println("no modules loaded")
				continue
			}
			op, _, err := operation.FromName(fields[1])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			values, err := parseArgs(fields[2:])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			out, err := sess.handler.Call(sess.ctx, op, values)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if len(out) == 0 {
				fmt.Println("ok (no outputs)")
				continue
			}
			for i, v := range out {
				fmt.Printf("out[%d] = %s\n", i, formatValue(v))
			}
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
	return scanner.Err()
}
