// Package statement handles the official statement command
package statement

import (
	"github.com/spf13/cobra"

	"fjacquet/fiobank/cmd/common"
	"fjacquet/fiobank/cmd/root"
)

var (
	year   int
	number int
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "List transactions of an official statement",
	Long:  `List the transactions of statement --number issued in --year.`,
	Args:  cobra.NoArgs,
	RunE:  statementFunc,
}

func init() {
	Cmd.Flags().IntVar(&year, "year", 0, "Statement year")
	Cmd.Flags().IntVar(&number, "number", 0, "Statement number within the year")
	_ = Cmd.MarkFlagRequired("year")
	_ = Cmd.MarkFlagRequired("number")
}

func statementFunc(cmd *cobra.Command, args []string) error {
	it, err := root.AppContainer.GetClient().Statement(cmd.Context(), year, number)
	if err != nil {
		return err
	}
	txs, err := it.Collect()
	if err != nil {
		return err
	}
	return common.WriteTransactions(root.SharedFlags.Output, root.Printer(), nil, txs)
}
