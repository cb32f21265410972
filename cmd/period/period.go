// Package period handles the date range statement command
package period

import (
	"github.com/spf13/cobra"

	"fjacquet/fiobank/cmd/common"
	"fjacquet/fiobank/cmd/root"
	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/models"
	"fjacquet/fiobank/pkg/fiobank"
)

var (
	from     string
	to       string
	withInfo bool
)

// Cmd represents the period command
var Cmd = &cobra.Command{
	Use:   "period",
	Short: "List transactions in a date range",
	Long:  `List the transactions booked between --from and --to, both inclusive.`,
	Args:  cobra.NoArgs,
	RunE:  periodFunc,
}

func init() {
	Cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	Cmd.Flags().BoolVar(&withInfo, "with-info", false, "Include the account information block")
	_ = Cmd.MarkFlagRequired("from")
	_ = Cmd.MarkFlagRequired("to")
}

func periodFunc(cmd *cobra.Command, args []string) error {
	printer := root.Printer()
	if err := printer.CheckTransactions(withInfo); err != nil {
		return err
	}

	client := root.AppContainer.GetClient()

	var (
		info *models.Info
		it   *fiobank.TransactionIterator
		err  error
	)
	if withInfo {
		var i fiobank.Info
		i, it, err = client.Transactions(cmd.Context(), from, to)
		info = &i
	} else {
		it, err = client.Period(cmd.Context(), from, to)
	}
	if err != nil {
		return err
	}

	txs, err := it.Collect()
	if err != nil {
		return err
	}
	root.Log.Debug("Fetched period", logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return common.WriteTransactions(root.SharedFlags.Output, printer, info, txs)
}
