package wizard

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

// Result holds everything collected by the interactive form.
type Result struct {
	Context   string
	Suppliers []scoring.Supplier
}

// ErrInputEnded is returned when piped input runs out before every question
// has been answered.
var ErrInputEnded = errors.New("input ended before every question was answered")

// Options bounds the supplier count prompt.
type Options struct {
	Limits session.Limits
}

// Run walks the user through supplier count, names, one score per criterion
// per supplier and the strategic context. Each step is its own form because
// later steps depend on earlier answers.
func Run(in io.Reader, out io.Writer, catalog scoring.Catalog, opts Options) (*Result, error) {
	limits := opts.Limits
	if limits.MaxSuppliers == 0 {
		limits = session.DefaultLimits()
	}
	p := newPrompter(in, out)

	countRaw := strconv.Itoa(limits.DefaultSuppliers)
	err := p.run(huh.NewGroup(
		huh.NewInput().
			Title("Number of suppliers").
			Description(fmt.Sprintf("Between %d and %d", limits.MinSuppliers, limits.MaxSuppliers)).
			Value(&countRaw).
			Validate(func(s string) error {
				_, err := parseCount(s, limits)
				return err
			}),
	))
	if err != nil {
		return nil, err
	}
	count, err := parseCount(countRaw, limits)
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	names := make([]string, count)
	var nameFields []huh.Field
	for i := range names {
		names[i] = session.DefaultSupplierName(i)
		nameFields = append(nameFields, huh.NewInput().
			Title(fmt.Sprintf("Supplier %d name", i+1)).
			Value(&names[i]))
	}
	if err := p.run(huh.NewGroup(nameFields...)); err != nil {
		return nil, err
	}

	raw := make([][]string, count)
	var groups []*huh.Group
	for i := range raw {
		raw[i] = make([]string, len(catalog.Criteria))
		var fields []huh.Field
		for j, c := range catalog.Criteria {
			raw[i][j] = formatScore(scoring.DefaultScore)
			fields = append(fields, huh.NewInput().
				Title(fmt.Sprintf("%s - %s", strings.TrimSpace(names[i]), c.Name)).
				Description(CriterionHelp(c)).
				Value(&raw[i][j]).
				Validate(func(s string) error {
					_, err := parseScore(s)
					return err
				}))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}
	if err := p.run(groups...); err != nil {
		return nil, err
	}

	contexts := catalog.Contexts()
	context := contexts[0]
	options := make([]huh.Option[string], len(contexts))
	for i, c := range contexts {
		options[i] = huh.NewOption(c, c)
	}
	err = p.run(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Strategic context").
			Options(options...).
			Value(&context),
	))
	if err != nil {
		return nil, err
	}

	return buildResult(context, names, raw)
}

// prompter runs the wizard's forms against one input stream. Without a
// terminal the forms fall back to huh's accessible line prompts, which open a
// fresh scanner per question, so the stream is handed out one byte at a time.
type prompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
	lines      *byteReader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: in, out: out, accessible: !isTerminal(in)}
	if p.accessible {
		p.lines = &byteReader{r: in}
		p.in = p.lines
	}
	return p
}

func (p *prompter) run(groups ...*huh.Group) error {
	if p.lines != nil && p.lines.eof {
		return fmt.Errorf("wizard failed: %w", ErrInputEnded)
	}
	form := huh.NewForm(groups...).
		WithInput(p.in).
		WithOutput(p.out).
		WithAccessible(p.accessible)
	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// byteReader reads at most one byte per call and remembers hitting EOF.
type byteReader struct {
	r   io.Reader
	eof bool
}

func (b *byteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	n, err := b.r.Read(p)
	if errors.Is(err, io.EOF) {
		b.eof = true
	}
	return n, err
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func buildResult(context string, names []string, raw [][]string) (*Result, error) {
	suppliers := make([]scoring.Supplier, len(names))
	for i, name := range names {
		scores := make([]float64, len(raw[i]))
		for j, s := range raw[i] {
			v, err := parseScore(s)
			if err != nil {
				return nil, fmt.Errorf("supplier %d criterion %d: %w", i+1, j+1, err)
			}
			scores[j] = v
		}
		suppliers[i] = scoring.Supplier{Name: strings.TrimSpace(name), Scores: scores}
	}
	return &Result{Context: context, Suppliers: suppliers}, nil
}

// CriterionHelp renders a criterion's description and guidance bands as
// form help text.
func CriterionHelp(c scoring.Criterion) string {
	var b strings.Builder
	b.WriteString(c.Description)
	for _, g := range c.Guidance {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", g.Range, g.Text)
	}
	return b.String()
}

// parseCount treats a blank answer as the default count; the accessible
// prompts validate the raw line before substituting the default.
func parseCount(s string, limits session.Limits) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return limits.DefaultSuppliers, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}
	if n < limits.MinSuppliers || n > limits.MaxSuppliers {
		return 0, fmt.Errorf("must be between %d and %d", limits.MinSuppliers, limits.MaxSuppliers)
	}
	return n, nil
}

func parseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return scoring.DefaultScore, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("enter a number")
	}
	return v, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
