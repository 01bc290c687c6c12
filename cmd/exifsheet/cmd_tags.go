package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greg-hacke/exifsheet/tags"
)

func newTagsCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the known EXIF and GPS tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, def := range tags.Default().All() {
				if group != "" && def.Group.String() != group {
					continue
				}
				fmt.Fprintf(out, "0x%04X  %-4s  %-28s %s\n",
					def.ID, def.Group, nameStyle.Render(def.Name), dimStyle.Render(def.Description))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "Only list EXIF or GPS tags")
	return cmd
}
