package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/analysis"
	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/network"
)

// analysisFlags are shared by every analysis command.
type analysisFlags struct {
	uniform bool // weigh every node 1
	refresh bool // bypass cache reads
	json    bool // print the report as JSON
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.uniform, "uniform", false, "ignore node weights from the graph file")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the report as JSON")
}

// session is a loaded graph plus the runner and options that analyse it.
type session struct {
	runner *analysis.Runner
	graph  *network.Graph
	opts   analysis.Options
}

// open loads path through a fresh runner. Callers must close the runner.
func (c *CLI) open(ctx context.Context, path string, flags analysisFlags) (*session, error) {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx)

	opts := c.options(flags.uniform)
	opts.Refresh = flags.refresh

	prog := newProgress(logger)
	g, cached, err := runner.Load(ctx, path, opts)
	if err != nil {
		runner.Close()
		return nil, err
	}
	if cached {
		prog.done(fmt.Sprintf("Loaded %s from cache", path))
	} else {
		prog.done(fmt.Sprintf("Loaded %s", path))
	}
	return &session{runner: runner, graph: g, opts: opts}, nil
}

func (s *session) Close() error { return s.runner.Close() }

// =============================================================================
// label
// =============================================================================

func (c *CLI) labelCommand() *cobra.Command {
	var (
		flags      analysisFlags
		source     string
		depthLimit int
	)

	cmd := &cobra.Command{
		Use:   "label [file]",
		Short: "Label every node with its depth and branch from a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("depth-limit") {
				s.opts.DepthLimit = depthLimit
			}
			res, err := s.runner.Label(cmd.Context(), s.graph, source, s.opts)
			if err != nil {
				return err
			}
			return printLabels(cmd.OutOrStdout(), res, flags.json)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "node to start the traversal from")
	cmd.Flags().IntVar(&depthLimit, "depth-limit", 0, "maximum traversal depth (0 = node count)")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func printLabels(w io.Writer, res *analysis.Result, asJSON bool) error {
	if asJSON {
		return writeReport(w, res.Report)
	}

	labels := res.Labels()
	rows := make([][]string, 0, len(res.Report.Labels))
	reached := 0
	for _, l := range res.Report.Labels {
		if !labels[l.ID].Reached() {
			rows = append(rows, []string{l.ID, "-", "-"})
			continue
		}
		reached++
		rows = append(rows, []string{l.ID, strconv.Itoa(l.Depth), strconv.Itoa(l.Branch)})
	}

	fmt.Fprintln(w, StyleTitle.Render("Labels from "+res.Report.Source))
	printStats(w, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.Hit)
	fmt.Fprintln(w, renderTable([]string{"Node", "Depth", "Branch"}, rows, 1, 2))
	printDetail(w, "%d of %d nodes reached across %d branches", reached, len(rows), labels.Branches())
	return nil
}

// =============================================================================
// metcalfe
// =============================================================================

func (c *CLI) metcalfeCommand() *cobra.Command {
	var (
		flags analysisFlags
		nodes string
	)

	cmd := &cobra.Command{
		Use:   "metcalfe [file]",
		Short: "Compute the Metcalfe value of the network or a subset of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.runner.Metcalfe(cmd.Context(), s.graph, parseNodes(nodes), s.opts)
			if err != nil {
				return err
			}
			if flags.json {
				return writeReport(cmd.OutOrStdout(), res.Report)
			}

			w := cmd.OutOrStdout()
			printStats(w, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.Hit)
			if len(res.Report.Subset) > 0 {
				printKeyValue(w, "subset", strings.Join(res.Report.Subset, ", "))
			}
			printKeyValue(w, "metcalfe", StyleNumber.Render(formatValue(*res.Report.Value)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&nodes, "nodes", "", "comma-separated subset of nodes (default: all)")

	return cmd
}

// parseNodes splits a comma-separated node list. An empty string yields nil.
func parseNodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// =============================================================================
// shapley / exact
// =============================================================================

func (c *CLI) shapleyCommand() *cobra.Command {
	var (
		flags analysisFlags
		node  string
		exact bool
	)

	cmd := &cobra.Command{
		Use:   "shapley [file]",
		Short: "Compute the Shapley value of one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			run := s.runner.Shapley
			if exact {
				run = s.runner.Exact
			}
			res, err := run(cmd.Context(), s.graph, node, s.opts)
			if err != nil {
				return err
			}
			return printNodeValue(cmd.OutOrStdout(), res, flags.json)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&node, "node", "", "node to value")
	cmd.Flags().BoolVar(&exact, "exact", false, "enumerate coalitions instead of using the labelling")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func (c *CLI) exactCommand() *cobra.Command {
	var (
		flags analysisFlags
		node  string
	)

	cmd := &cobra.Command{
		Use:   "exact [file]",
		Short: "Compare the exact Shapley value of a node with the labelling formula",
		Long: `Exact enumerates every coalition of the network. It is limited to small
graphs (see exact_max_nodes in the config file).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.runner.Exact(cmd.Context(), s.graph, node, s.opts)
			if err != nil {
				return err
			}
			return printNodeValue(cmd.OutOrStdout(), res, flags.json)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&node, "node", "", "node to value")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func printNodeValue(w io.Writer, res *analysis.Result, asJSON bool) error {
	if asJSON {
		return writeReport(w, res.Report)
	}

	rep := res.Report
	printStats(w, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.Hit)
	printKeyValue(w, "node", rep.Node)
	if rep.Kind == graph.KindExact {
		printKeyValue(w, "exact", StyleNumber.Render(formatValue(*rep.Value)))
		if rep.Approx != nil {
			printKeyValue(w, "labelled", formatValue(*rep.Approx))
			if diff := *rep.Value - *rep.Approx; diff != 0 {
				printWarning(w, "labelling formula differs by %s (the graph has cycles)", formatValue(diff))
			}
		}
		return nil
	}
	printKeyValue(w, "shapley", StyleNumber.Render(formatValue(*rep.Value)))
	return nil
}

// =============================================================================
// rank
// =============================================================================

func (c *CLI) rankCommand() *cobra.Command {
	var (
		flags   analysisFlags
		top     int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "rank [file]",
		Short: "Rank every node by Shapley value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, args[0], flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("workers") {
				s.opts.Workers = workers
			}

			var spinner *Spinner
			if !flags.json {
				spinner = startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Valuing %d nodes...", s.graph.NodeCount()))
			}
			res, err := s.runner.Rank(ctx, s.graph, s.opts)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			if flags.json {
				return writeReport(cmd.OutOrStdout(), truncate(res.Report, top))
			}

			total, err := s.runner.Metcalfe(ctx, s.graph, nil, s.opts)
			if err != nil {
				return err
			}
			printRanking(cmd.OutOrStdout(), res, *total.Report.Value, top)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&top, "top", 0, "show only the N most valuable nodes (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", 0, "goroutines used to value nodes (default from config)")

	return cmd
}

// truncate returns a copy of rep keeping the first n scores. n <= 0 keeps all.
func truncate(rep *graph.Report, n int) *graph.Report {
	if n <= 0 || n >= len(rep.Scores) {
		return rep
	}
	out := *rep
	out.Scores = rep.Scores[:n]
	return &out
}

func printRanking(w io.Writer, res *analysis.Result, total float64, top int) {
	sum := 0.0
	for _, s := range res.Report.Scores {
		sum += s.Value
	}

	rows := make([][]string, 0, len(res.Report.Scores))
	for i, s := range truncate(res.Report, top).Scores {
		share := "-"
		if total != 0 {
			share = fmt.Sprintf("%.1f%%", 100*s.Value/total)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Node, formatValue(s.Value), share})
	}

	printStats(w, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.Hit)
	fmt.Fprintln(w, renderTable([]string{"#", "Node", "Shapley", "Share"}, rows, 0, 2, 3))
	printKeyValue(w, "sum", formatValue(sum))
	printKeyValue(w, "metcalfe", formatValue(total))
	if diff := sum - total; diff > 1e-9 || diff < -1e-9 {
		printDetail(w, "values do not add up to the network value; the graph has cycles")
	}
}

// =============================================================================
// Output
// =============================================================================

// writeReport prints rep as indented JSON.
func writeReport(w io.Writer, rep *graph.Report) error {
	data, err := graph.MarshalReport(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
