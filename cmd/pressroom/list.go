package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pressroom"
	"github.com/eringen/pressroom/meta"
)

func newListCmd(c *cli) *cobra.Command {
	var tag, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			pages, err := c.posts(cmd)
			if err != nil {
				return err
			}
			articles, err := meta.GetArticles(pages, tag)
			if err != nil {
				return err
			}
			if output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), articles)
			}
			return writeArticles(cmd.OutOrStdout(), articles)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only list posts carrying this tag")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func newTagsCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags of published posts with their counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			pages, err := c.posts(cmd)
			if err != nil {
				return err
			}
			tags, err := meta.GetTags(pages)
			if err != nil {
				return err
			}
			if output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), tags)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tc := range tags {
				fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	return cmd
}

// posts loads the records under the configured posts route.
func (c *cli) posts(cmd *cobra.Command) ([]meta.PageRecord, error) {
	src, closeSrc, err := c.openSource()
	if err != nil {
		return nil, err
	}
	defer closeSrc()
	pages, err := src.Pages(cmd.Context())
	if err != nil {
		return nil, err
	}
	return pressroom.RecordsUnder(pages, c.cfg.PostsRoute), nil
}

func checkOutput(output string) error {
	switch output {
	case "text", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeArticles(w io.Writer, articles []meta.Meta) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTITLE\tTAGS\tLINK")
	for _, m := range articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Date, m.Title, strings.Join(m.Tags, ","), m.Link)
	}
	return tw.Flush()
}
