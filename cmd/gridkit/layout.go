package main

import (
	"fmt"
	"os"
	"strconv"

	"gridkit/pkg/geom"
	"gridkit/pkg/options"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// obsoleteGridOptions maps renamed grid options to their replacement. An
// empty replacement means the option is dropped.
var obsoleteGridOptions = map[string]string{
	"verticalMargin":       "margin",
	"oneColumnSize":        "columnOpts",
	"oneColumnModeDomSort": "",
	"disableOneColumnMode": "",
}

// widget is one placed child of a layout file.
type widget struct {
	ID   string
	Rect geom.Rect
}

func widgetDefaults() options.Options {
	return options.Options{"x": 0, "y": 0, "w": 1, "h": 1}
}

func readOptions(path string) (options.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts, err := options.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// loadLayout reads a grid options file and returns it with its children.
func (a *app) loadLayout(path string) (options.Options, []widget, error) {
	opts, err := readOptions(path)
	if err != nil {
		return nil, nil, err
	}
	options.MigrateObsolete(opts, obsoleteGridOptions, a.logger)

	raw, _ := opts["children"].([]any)
	widgets := make([]widget, 0, len(raw))
	for i, item := range raw {
		node, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("%s: child %d is not a mapping", path, i)
		}
		options.MergeDefaults(node, widgetDefaults())
		widgets = append(widgets, widget{
			ID: widgetID(node, i),
			Rect: geom.Rect{
				X: intOption(node, "x"),
				Y: intOption(node, "y"),
				W: intOption(node, "w"),
				H: intOption(node, "h"),
			},
		})
	}
	return opts, widgets, nil
}

func intOption(o options.Options, key string) int {
	n, _ := options.ToNumber(o[key])
	return int(n)
}

func widgetID(node options.Options, i int) string {
	if id, ok := node["id"]; ok && id != nil {
		return fmt.Sprint(id)
	}
	return "#" + strconv.Itoa(i)
}

func (a *app) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order <layout.yaml>",
		Short: "Print a layout's widgets in row-major order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, widgets, err := a.loadLayout(args[0])
			if err != nil {
				return err
			}
			dir := geom.ParseDirection(a.v.GetString("order.direction"))
			width := a.v.GetInt("order.column-width")
			if width <= 0 {
				width = intOption(opts, "column")
			}
			sorted := geom.OrderFunc(widgets, func(w widget) geom.Rect { return w.Rect }, dir, width)
			out := cmd.OutOrStdout()
			for _, w := range sorted {
				fmt.Fprintf(out, "%s\t%s\n", w.ID, w.Rect)
			}
			return nil
		},
	}
	cmd.Flags().String("direction", "asc", "sort direction: asc or desc")
	cmd.Flags().Int("column-width", 0, "row width for linearization (default: the layout's column option, else the widest row)")
	a.bind("order.direction", cmd.Flags(), "direction")
	a.bind("order.column-width", cmd.Flags(), "column-width")
	return cmd
}

func (a *app) overlapsCmd() *cobra.Command {
	var fail bool
	cmd := &cobra.Command{
		Use:   "overlaps <layout.yaml>",
		Short: "List pairs of widgets that share cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, widgets, err := a.loadLayout(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			pairs := 0
			for i := range widgets {
				for j := i + 1; j < len(widgets); j++ {
					if !geom.Intersects(widgets[i].Rect, widgets[j].Rect) {
						continue
					}
					pairs++
					fmt.Fprintf(out, "%s\t%s\t%d\n", widgets[i].ID, widgets[j].ID,
						geom.AreaIntercept(widgets[i].Rect, widgets[j].Rect))
				}
			}
			if pairs == 0 {
				fmt.Fprintln(out, "no overlaps")
				return nil
			}
			if fail {
				return fmt.Errorf("%d overlapping pairs", pairs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fail, "fail", false, "exit non-zero when any widgets overlap")
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <options.yaml> <defaults.yaml>",
		Short: "Print the options that differ from the defaults, without internal fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readOptions(args[0])
			if err != nil {
				return err
			}
			defaults, err := readOptions(args[1])
			if err != nil {
				return err
			}
			options.RemoveInternalAndSame(opts, defaults)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(opts); err != nil {
				return fmt.Errorf("encoding diff: %w", err)
			}
			return enc.Close()
		},
	}
}
