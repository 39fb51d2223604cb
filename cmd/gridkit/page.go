package main

import (
	"fmt"

	"gridkit/pkg/css"
	"gridkit/pkg/dom"
	"gridkit/pkg/js"
	"gridkit/pkg/resource"
	"gridkit/pkg/scroll"
	stdnet "gridkit/std/net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) heightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "height <value>",
		Short: "Parse a cell height such as 70, 4.5em or 10vh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := css.ParseHeight(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

// addViewportFlags registers the viewport size flags shared by the page
// commands.
func (a *app) addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("viewport-width", 1024, "viewport width in pixels")
	cmd.Flags().Float64("viewport-height", 768, "viewport height in pixels")
}

func (a *app) loadPage(cmd *cobra.Command, uri string) (*dom.Document, error) {
	width, _ := cmd.Flags().GetFloat64("viewport-width")
	height, _ := cmd.Flags().GetFloat64("viewport-height")
	if !cmd.Flags().Changed("viewport-width") && a.v.IsSet("viewport.width") {
		width = a.v.GetFloat64("viewport.width")
	}
	if !cmd.Flags().Changed("viewport-height") && a.v.IsSet("viewport.height") {
		height = a.v.GetFloat64("viewport.height")
	}
	return resource.LoadPage(cmd.Context(), a.fetcher(uri), uri, width, height, a.logger)
}

func (a *app) fetcher(base string) *resource.DefaultFetcher {
	return resource.NewFetcher(base, resource.WithClient(stdnet.NewClient(stdnet.WithLogger(a.logger))))
}

func (a *app) runCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "run <page.html> [script.js...]",
		Short: "Run a page's scripts, then any extra scripts, against its DOM",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadPage(cmd, args[0])
			if err != nil {
				return err
			}
			engine := js.New(js.WithLogger(a.logger))
			if err := engine.Execute(doc); err != nil {
				return err
			}

			fetcher := a.fetcher("")
			for _, path := range args[1:] {
				src, err := resource.FetchText(cmd.Context(), fetcher, path, "javascript")
				if err != nil {
					return err
				}
				if _, err := engine.RunString(src); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			if dump {
				fmt.Fprintln(cmd.OutOrStdout(), doc.Body().SerializeOuter())
			}
			return nil
		},
	}
	a.addViewportFlags(cmd)
	cmd.Flags().BoolVar(&dump, "dump", false, "print the resulting <body> markup")
	return cmd
}

func (a *app) scrollCmd() *cobra.Command {
	var (
		delta    float64
		steps    int
		pointerY float64
		edge     float64
	)
	cmd := &cobra.Command{
		Use:   "scroll <page.html> <element>",
		Short: "Replay a vertical drag of an element and report how its container scrolls",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadPage(cmd, args[0])
			if err != nil {
				return err
			}
			el := doc.Resolve(args[1])
			if el == nil {
				return fmt.Errorf("no element matches %q", args[1])
			}

			out := cmd.OutOrStdout()
			g := scroll.New(doc, scroll.WithLogger(a.logger)).Begin(el)
			fmt.Fprintf(out, "container\t%s\n", elementLabel(g.Container()))

			pos := scroll.Position{Top: doc.BoundingRect(el).Top}
			for i := 1; i <= steps; i++ {
				applied := g.EnsureVisible(&pos, delta)
				fmt.Fprintf(out, "step %d\tapplied %g\tscrollTop %g\ttop %g\n",
					i, applied, g.State().ContainerTop, pos.Top)
			}

			if cmd.Flags().Changed("pointer-y") {
				applied := g.AutoScroll(pointerY, edge)
				fmt.Fprintf(out, "edge\tapplied %g\tscrollTop %g\n", applied, g.State().ContainerTop)
			}
			a.logger.Debug("drag replay finished", zap.Int("steps", steps))
			return nil
		},
	}
	a.addViewportFlags(cmd)
	cmd.Flags().Float64Var(&delta, "delta", 20, "pointer movement per step in pixels (negative drags upward)")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of drag steps")
	cmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "pointer position for one edge auto-scroll check")
	cmd.Flags().Float64Var(&edge, "edge", 50, "edge distance that triggers auto-scroll")
	return cmd
}

func elementLabel(el *dom.Element) string {
	if id := el.ID(); id != "" {
		return el.TagName + "#" + id
	}
	return el.TagName
}
