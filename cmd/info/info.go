// Package info handles the account information command
package info

import (
	"io"

	"github.com/spf13/cobra"

	"fjacquet/fiobank/cmd/common"
	"fjacquet/fiobank/cmd/root"
)

// Cmd represents the info command
var Cmd = &cobra.Command{
	Use:   "info",
	Short: "Show account information",
	Long:  `Show the account information block of today's statement.`,
	Args:  cobra.NoArgs,
	RunE:  infoFunc,
}

func infoFunc(cmd *cobra.Command, args []string) error {
	info, err := root.AppContainer.GetClient().Info(cmd.Context())
	if err != nil {
		return err
	}
	return common.WriteTo(root.SharedFlags.Output, func(w io.Writer) error {
		return root.Printer().WriteInfo(w, info)
	})
}
