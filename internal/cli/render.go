package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	flags    analysisFlags
	source   string  // colour nodes by branch from this node
	scores   bool    // size nodes by Shapley value
	detailed bool    // annotate nodes with weight, coordinates and score
	output   string  // output file; empty derives it from the input
	format   string  // svg, png, pdf or dot
	engine   string  // graphviz layout engine
	scale    float64 // PNG scale factor
}

var renderFormats = []string{nodelink.FormatSVG, nodelink.FormatPNG, nodelink.FormatPDF, nodelink.FormatDOT}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the network as a node-link diagram",
		Long: `Render draws the network with Graphviz. With --source, nodes are coloured
by branch and unreached nodes are dashed; with --scores, node size follows
the Shapley value. PNG and PDF output need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromPath(opts.output)
			}
			if !slices.Contains(renderFormats, opts.format) {
				return fmt.Errorf("invalid format: %s (must be one of %s)", opts.format, strings.Join(renderFormats, ", "))
			}
			if err := nodelink.ValidateEngine(opts.engine); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.flags.register(cmd)
	cmd.Flags().StringVar(&opts.source, "source", "", "colour nodes by branch from this node")
	cmd.Flags().BoolVar(&opts.scores, "scores", false, "size nodes by Shapley value")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show weight, coordinates and score in node labels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(renderFormats, ", ")+" (default: from -o, else svg)")
	cmd.Flags().StringVar(&opts.engine, "engine", nodelink.DefaultEngine, "layout engine: "+strings.Join(nodelink.Engines, ", "))
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := c.open(ctx, input, opts.flags)
	if err != nil {
		return err
	}
	defer s.Close()

	dotOpts := nodelink.Options{Engine: opts.engine, Detailed: opts.detailed}
	if opts.source != "" {
		res, err := s.runner.Label(ctx, s.graph, opts.source, s.opts)
		if err != nil {
			return err
		}
		dotOpts.Labels = res.Labels()
	}
	if opts.scores && s.graph.NodeCount() > 0 {
		res, err := s.runner.Rank(ctx, s.graph, s.opts)
		if err != nil {
			return err
		}
		dotOpts.Scores = res.Scores()
	}

	prog := newProgress(logger)
	data, err := nodelink.Render(nodelink.ToDOT(s.graph, dotOpts), opts.format, opts.scale)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	out, err := openOutput(cmd.OutOrStdout(), path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		prog.done("Rendered " + path)
	}
	return nil
}

// formatFromPath infers the render format from an output file extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if slices.Contains(renderFormats, ext) {
		return ext
	}
	return nodelink.FormatSVG
}

// openOutput returns a WriteCloser for path. "-" writes to stdout.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
