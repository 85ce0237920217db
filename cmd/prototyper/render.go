package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/render"
)

func newRenderCmd() *cobra.Command {
	var (
		siteType string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "render <idea text>",
		Short: "Render the prototype page for an idea",
		Long: fmt.Sprintf("Render the prototype page for an idea.\n\nSite types: %s",
			joinSiteTypes()),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := domain.ParseSiteType(siteType)
			if err != nil {
				return err
			}
			page := render.Render(site, strings.Join(args, " "))

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			_, err = io.WriteString(w, page)
			return err
		},
	}
	cmd.Flags().StringVar(&siteType, "site-type", string(domain.SiteLanding), "page archetype")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the page to a file instead of stdout")
	return cmd
}

func joinSiteTypes() string {
	names := make([]string, 0, len(domain.SiteTypes))
	for _, s := range domain.SiteTypes {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
