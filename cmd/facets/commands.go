package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seebs.net/kaleido/config"
	"seebs.net/kaleido/facet"
)

func newMetricsCmd() *cobra.Command {
	var radius float64
	var facets int

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show the metrics of one cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := facet.NewCell(radius, facets)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printTitle(w, "cell r=%g, %d facets", radius, facets)
			printKeyNumber(w, "facet angle", cell.FacetAngle)
			printKeyNumber(w, "facet height", cell.FacetHeight)
			printKeyNumber(w, "cell height", cell.CellHeight)
			printKeyNumber(w, "horizontal offset", cell.HorizontalOffset)
			printKeyNumber(w, "cell width", cell.CellWidth)
			tw, th := cell.TextureSize()
			printKeyValue(w, "texture", fmt.Sprintf("%.1f x %.1f", tw, th))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&radius, "radius", "r", 300, "cell radius in pixels")
	cmd.Flags().IntVarP(&facets, "facets", "n", facet.DefaultFacets, "number of facets")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var (
		width, height int
		radius        float64
		variant       string
		cells         bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how cells tile a canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if variant != "" {
				v, err := config.Builtin().Lookup(variant)
				if err != nil {
					return err
				}
				width, height, radius = v.Width, v.Height, v.Radius
			}
			cell, err := facet.NewCell(radius, facet.DefaultFacets)
			if err != nil {
				return err
			}
			plan := cell.Plan(float64(width), float64(height))
			loggerFrom(cmd).Debug("plan", "width", width, "height", height, "radius", radius)

			w := cmd.OutOrStdout()
			printTitle(w, "%dx%d canvas, r=%g", width, height, radius)
			printKeyValue(w, "columns", fmt.Sprint(plan.Columns))
			printKeyValue(w, "rows", fmt.Sprint(plan.Rows))
			printKeyValue(w, "cells drawn", fmt.Sprint(plan.Cells()))
			if !cells {
				return nil
			}
			printRow(w, styleDim, "col", "row", "x", "y")
			plan.Each(func(col, row int, x, y float64) {
				printRow(w, styleValue, fmt.Sprint(col), fmt.Sprint(row), fmt.Sprintf("%.1f", x), fmt.Sprintf("%.1f", y))
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 768, "canvas width")
	cmd.Flags().IntVar(&height, "height", 768, "canvas height")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 300, "cell radius in pixels")
	cmd.Flags().StringVar(&variant, "variant", "", "take the canvas and radius from a built-in variant")
	cmd.Flags().BoolVar(&cells, "cells", false, "list every cell position")
	return cmd
}

func newFanCmd() *cobra.Command {
	var radius float64
	var facets int

	cmd := &cobra.Command{
		Use:   "fan",
		Short: "List the vertices and triangles of one cell's fan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := facet.CellMetrics(radius, facets); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printTitle(w, "fan r=%g, %d facets", radius, facets)
			printRow(w, styleDim, "vertex", "x", "y", "u", "v")
			for i, v := range facet.Vertices(radius, facets) {
				printRow(w, styleValue, fmt.Sprint(i),
					fmt.Sprintf("%.2f", v.X), fmt.Sprintf("%.2f", v.Y),
					fmt.Sprint(v.U), fmt.Sprint(v.V))
			}
			ix := facet.Indices(facets, 0)
			tris := make([]string, 0, len(ix)/3)
			for i := 0; i+2 < len(ix); i += 3 {
				tris = append(tris, fmt.Sprintf("%d-%d-%d", ix[i], ix[i+1], ix[i+2]))
			}
			printKeyValue(w, "triangles", strings.Join(tris, " "))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&radius, "radius", "r", 300, "cell radius in pixels")
	cmd.Flags().IntVarP(&facets, "facets", "n", facet.DefaultFacets, "number of facets")
	return cmd
}

func newVariantsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the available variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := config.Load(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printRow(w, styleDim, "name", "canvas", "radius", "shape", "modes", "textures")
			for _, v := range set.Variants() {
				ms, _ := v.EnabledModes()
				names := make([]string, len(ms))
				for i, m := range ms {
					names[i] = m.Name()[:1]
				}
				printRow(w, styleValue, v.Name,
					fmt.Sprintf("%dx%d", v.Width, v.Height),
					fmt.Sprint(v.Radius), v.Shape,
					strings.Join(names, ""),
					fmt.Sprint(1+len(v.Textures.Alternates)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "TOML file with extra variants")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.toml>",
		Short: "Validate a variants file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := config.Load(args[0])
			if err != nil {
				printFailure(cmd.OutOrStdout(), "%s", args[0])
				return err
			}
			for _, v := range set.Variants() {
				cell, _ := v.Cell()
				plan := cell.Plan(float64(v.Width), float64(v.Height))
				printSuccess(cmd.OutOrStdout(), "%s: %d cells", v.Name, plan.Cells())
			}
			return nil
		},
	}
}
