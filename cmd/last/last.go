// Package last handles the new transactions command
package last

import (
	"github.com/spf13/cobra"

	"fjacquet/fiobank/cmd/common"
	"fjacquet/fiobank/cmd/root"
	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/models"
	"fjacquet/fiobank/pkg/fiobank"
)

var (
	fromID   string
	fromDate string
	withInfo bool
)

// Cmd represents the last command
var Cmd = &cobra.Command{
	Use:   "last",
	Short: "List transactions since the last download",
	Long: `List the transactions since the last download and move the download mark.

--from-id or --from-date move the mark before downloading. They cannot be combined.`,
	Args: cobra.NoArgs,
	RunE: lastFunc,
}

func init() {
	Cmd.Flags().StringVar(&fromID, "from-id", "", "Start after this transaction ID")
	Cmd.Flags().StringVar(&fromDate, "from-date", "", "Start after this day (YYYY-MM-DD)")
	Cmd.Flags().BoolVar(&withInfo, "with-info", false, "Include the account information block")
}

func lastFunc(cmd *cobra.Command, args []string) error {
	printer := root.Printer()
	if err := printer.CheckTransactions(withInfo); err != nil {
		return err
	}

	params := fiobank.LastParams{FromID: fromID}
	if fromDate != "" {
		params.FromDate = fromDate
	}

	client := root.AppContainer.GetClient()
	var (
		info *models.Info
		it   *fiobank.TransactionIterator
		err  error
	)
	if withInfo {
		var i fiobank.Info
		i, it, err = client.LastTransactions(cmd.Context(), params)
		info = &i
	} else {
		it, err = client.Last(cmd.Context(), params)
	}
	if err != nil {
		return err
	}

	txs, err := it.Collect()
	if err != nil {
		return err
	}
	root.Log.Debug("Fetched new transactions", logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return common.WriteTransactions(root.SharedFlags.Output, printer, info, txs)
}
