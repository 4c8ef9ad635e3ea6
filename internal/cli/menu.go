package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/logicrules/internal/engine"
	"github.com/roach88/logicrules/internal/record"
	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/view"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive rule checker",
		Long: `Ask for a student name, then run rule checks from a numbered menu until
Exit is chosen or input ends. Every check is saved as it completes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(rootOpts, cmd)
		},
	}
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := commandContext(cmd)
	if err := env.engine.Init(ctx); err != nil {
		return env.formatter.Fail(err)
	}

	m := &menu{
		engine: env.engine,
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
	}
	if err := m.run(ctx); err != nil {
		return env.formatter.Fail(err)
	}
	return nil
}

// errInputClosed ends the session when stdin runs out mid-menu.
var errInputClosed = errors.New("input closed")

// menu is one interactive session over line-oriented input.
type menu struct {
	engine  *engine.Engine
	in      *bufio.Scanner
	out     io.Writer
	subject string
}

func (m *menu) run(ctx context.Context) error {
	fmt.Fprintln(m.out, "=== University Logic Rule System ===")

	for m.subject == "" {
		name, err := m.prompt("Enter Student Name")
		if err != nil {
			return ignoreClosed(err)
		}
		m.subject = record.NormalizeSubject(name)
		if m.subject == "" {
			fmt.Fprintln(m.out, "Student name is required.")
		}
	}

	available := m.engine.Rules()
	viewChoice := strconv.Itoa(len(available) + 1)
	exitChoice := strconv.Itoa(len(available) + 2)

	for {
		m.printMenu(available)

		choice, err := m.prompt("Choose an Option")
		if err != nil {
			return ignoreClosed(err)
		}

		switch choice = strings.TrimSpace(choice); choice {
		case viewChoice:
			err = m.view(ctx)
		case exitChoice:
			fmt.Fprintf(m.out, "Exiting... Results saved to %s\n", m.engine.Location())
			return nil
		default:
			n, convErr := strconv.Atoi(choice)
			if convErr != nil || n < 1 || n > len(available) {
				fmt.Fprintln(m.out, "Unknown Choice")
				continue
			}
			err = m.check(ctx, available[n-1])
		}
		if err != nil {
			return ignoreClosed(err)
		}
	}
}

func (m *menu) printMenu(available []rules.Rule) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "==============================")
	fmt.Fprintln(m.out, "          Main Menu")
	fmt.Fprintln(m.out, "==============================")
	for i, r := range available {
		fmt.Fprintf(m.out, "%d) %s\n", i+1, r.Title())
	}
	fmt.Fprintf(m.out, "%d) View Student Records\n", len(available)+1)
	fmt.Fprintf(m.out, "%d) Exit\n", len(available)+2)
}

// check asks the rule's questions and records the answer. Invalid input
// is reported and the menu carries on; storage failures end the session.
func (m *menu) check(ctx context.Context, r rules.Rule) error {
	fmt.Fprintf(m.out, "\n--- %s ---\n", r.Title())

	answers := make(rules.Answers, len(r.Prompts()))
	for _, p := range r.Prompts() {
		line, err := m.prompt(p.Question)
		if err != nil {
			return err
		}
		answers[p.Key] = line
	}

	ev, err := m.engine.Check(ctx, r.ID().String(), m.subject, answers)
	if err != nil {
		var ie *rules.InvalidInputError
		if errors.As(err, &ie) {
			fmt.Fprintf(m.out, "Invalid %s Input\n", cases.Title(language.English).String(ie.Field))
			return nil
		}
		return err
	}

	fmt.Fprintf(m.out, "Result: %s\n", ev.Summary)
	return nil
}

func (m *menu) view(ctx context.Context) error {
	name, err := m.prompt("Enter the student name to view records")
	if err != nil {
		return err
	}

	rec, found, err := m.engine.Lookup(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprint(m.out, view.NotFound(record.NormalizeSubject(name)))
		return nil
	}
	fmt.Fprintln(m.out)
	fmt.Fprint(m.out, view.Render(rec))
	return nil
}

// prompt writes "question: " and reads one line. The line is returned
// as typed; each rule decides how much whitespace matters.
func (m *menu) prompt(question string) (string, error) {
	fmt.Fprintf(m.out, "%s: ", question)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return m.in.Text(), nil
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}
