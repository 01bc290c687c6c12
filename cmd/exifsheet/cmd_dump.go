package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"greg-hacke/exifsheet/meta"
	"greg-hacke/exifsheet/tags"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print every metadata entry of one image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.ReaderOptions()
			opts.XMP = true

			md, err := meta.NewReader(tags.Default(), opts).ReadFile(args[0])
			if err != nil {
				return err
			}
			printMetadata(cmd.OutOrStdout(), md)
			return nil
		},
	}
}

func printMetadata(w io.Writer, md *meta.Metadata) {
	fmt.Fprintln(w, headerStyle.Render(md.Path),
		dimStyle.Render(fmt.Sprintf("%s, %s", md.Format, humanize.Bytes(uint64(md.Size)))))
	if len(md.Entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no metadata"))
		return
	}
	for _, e := range md.Entries {
		if gps, ok := e.Value.(meta.GPS); ok {
			fmt.Fprintf(w, "  %s :\n", nameStyle.Render(e.Name))
			for _, g := range gps.Entries {
				fmt.Fprintf(w, "    %s : %s\n", nameStyle.Render(g.Name), meta.FormatValue(g.Value))
			}
			continue
		}
		fmt.Fprintf(w, "  %s : %s\n", nameStyle.Render(e.Name), meta.FormatValue(e.Value))
	}
}
