package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/container/list"
	"github.com/joshuapare/memkit/mem"
)

var sizesAlign int

func init() {
	cmd := newSizesCmd()
	cmd.Flags().IntVar(&sizesAlign, "align", 8, "Alignment to round to (power of two)")
	rootCmd.AddCommand(cmd)
}

func newSizesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sizes",
		Short: "Print size and alignment tables",
		Long: `The sizes command prints aligned sizes for common request widths and
the per-node footprint of the list containers, for choosing pool chunk
sizes.

Example:
  memctl sizes
  memctl sizes --align 16 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSizes()
		},
	}
}

// SizeRow maps a requested size to what an allocator actually carves.
type SizeRow struct {
	Requested int `json:"requested"`
	Aligned   int `json:"aligned"`
	Waste     int `json:"waste"`
}

// NodeSizes reports the per-node cost of the linked containers for an
// 8-byte element, the usual pool sizing baseline.
type NodeSizes struct {
	ListNode    int `json:"list_node"`
	ForwardNode int `json:"forward_node"`
}

func runSizes() error {
	if !mem.IsPowerOfTwo(sizesAlign) {
		return mem.ErrInvalidRequest
	}

	var rows []SizeRow
	for _, req := range []int{1, 3, 8, 12, 24, 33, 64, 100, 256, 1000, 4096} {
		aligned := mem.AlignUp(req, sizesAlign)
		rows = append(rows, SizeRow{Requested: req, Aligned: aligned, Waste: aligned - req})
	}
	nodes := NodeSizes{
		ListNode:    list.NodeSize[uint64](),
		ForwardNode: list.ForwardNodeSize[uint64](),
	}

	if jsonOut {
		return printJSON(struct {
			Align int       `json:"align"`
			Rows  []SizeRow `json:"rows"`
			Nodes NodeSizes `json:"nodes"`
		}{sizesAlign, rows, nodes})
	}

	printInfo("alignment: %d\n\n", sizesAlign)
	printInfo("%10s %10s %8s\n", "REQUESTED", "ALIGNED", "WASTE")
	for _, r := range rows {
		printInfo("%10d %10d %8d\n", r.Requested, r.Aligned, r.Waste)
	}
	printInfo("\nlist node (uint64 element):    %d bytes\n", nodes.ListNode)
	printInfo("forward node (uint64 element): %d bytes\n", nodes.ForwardNode)
	return nil
}
