package commands

import (
	"encoding/hex"
	"os"
	"strconv"

	"github.com/marmos91/gocdr/internal/cli/output"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <hex-bytes>",
	Short: "Decode a frame and render its members as a table",
	Long: `inspect is "decode" with tabular output: one row per member with
its id, header kind, length, and raw bytes, rendered with the same table
styling cdrdump uses for every tabular command.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&decodeVersion, "version", "", "CDR version: corba, xcdr1, or xcdr2 (overrides the header's own version hint when set)")
}

// frameTable adapts a []cdr.MemberFrame to output.TableRenderer.
type frameTable struct {
	rows [][]string
}

func (t *frameTable) Headers() []string { return []string{"ID", "HEADER", "LENGTH", "RAW"} }
func (t *frameTable) Rows() [][]string  { return t.rows }

func runInspect(cmd *cobra.Command, args []string) error {
	_, frames, err := decodeFrames(args[0])
	if err != nil {
		return err
	}

	table := &frameTable{}
	for _, f := range frames {
		table.rows = append(table.rows, []string{
			strconv.FormatUint(uint64(f.ID), 10),
			headerKindLabel(f.Header),
			strconv.Itoa(len(f.Raw)),
			hex.EncodeToString(f.Raw),
		})
	}

	return output.PrintTable(os.Stdout, table)
}
