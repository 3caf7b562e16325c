package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	nifio "github.com/matzehuels/nifstream/pkg/io"
	"github.com/matzehuels/nifstream/pkg/nif"
	_ "github.com/matzehuels/nifstream/pkg/nif/schema"
)

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var (
		jsonOut     bool
		outPath     string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a file and list or export its block graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("decoded file", "path", args[0], "version", g.Version.String(), "blocks", len(g.Blocks))

			if jsonOut {
				if outPath != "" {
					if err := nifio.ExportJSON(g, outPath); err != nil {
						return err
					}
					printSuccess("Exported %d blocks", len(g.Blocks))
					printFile(outPath)
					return nil
				}
				return nifio.WriteJSON(g, os.Stdout)
			}

			if interactive {
				model := newBlockListModel(g)
				p := tea.NewProgram(model)
				final, err := p.Run()
				if err != nil {
					return fmt.Errorf("interactive browser: %w", err)
				}
				if m, ok := final.(blockListModel); ok && m.selected >= 0 {
					printBlockDetail(g, m.selected)
				}
				return nil
			}

			printSuccess("%s (%s)", filepath.Base(args[0]), g.Version.String())
			ctx := nif.NewContext(g.Version, g.UserVersion)
			rootSet := make(map[nif.Block]bool, len(g.Roots))
			for _, b := range g.Roots {
				rootSet[b] = true
			}
			for i, b := range g.Blocks {
				line := fmt.Sprintf("%4d  %s", i, b.TypeName())
				if names := nif.BlockStrings(b, ctx); len(names) > 0 && names[0] != "" {
					line += StyleDim.Render(" " + names[0])
				}
				if rootSet[b] {
					line += " " + StyleHighlight.Render("(root)")
				}
				fmt.Println(line)
			}
			printStats(len(g.Blocks), countEdges(g), false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the graph as JSON")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write JSON to a file instead of stdout")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse blocks interactively")

	return cmd
}

// decodeFile opens and fully decodes one stream.
func decodeFile(path string) (*nif.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := nif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

func countEdges(g *nif.Graph) int {
	n := 0
	for _, b := range g.Blocks {
		n += len(nif.Links(b))
	}
	return n
}

// printBlockDetail prints one block's type, name, and outgoing references.
func printBlockDetail(g *nif.Graph, i int) {
	if i < 0 || i >= len(g.Blocks) {
		return
	}
	b := g.Blocks[i]
	ctx := nif.NewContext(g.Version, g.UserVersion)

	index := make(map[nif.Block]int, len(g.Blocks))
	for j, blk := range g.Blocks {
		index[blk] = j
	}

	fmt.Println(StyleTitle.Render(b.TypeName()))
	printKeyValue("index", fmt.Sprintf("%d", i))
	if names := nif.BlockStrings(b, ctx); len(names) > 0 && names[0] != "" {
		printKeyValue("name", names[0])
	}
	if h, ok := nif.HashBlock(b, ctx); ok {
		printKeyValue("hash", fmt.Sprintf("%016x", h))
	}
	for _, child := range nif.OwnedChildren(b) {
		printDetail("owns %s %d (%s)", iconArrow, index[child], child.TypeName())
	}
	for _, target := range nif.WeakTargets(b) {
		printDetail("points %s %d (%s)", iconArrow, index[target], target.TypeName())
	}
}
