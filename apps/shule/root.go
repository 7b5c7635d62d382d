package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shule",
		Short:         "Terminal front-end for the Shule school ERP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(a),
		newForgotPasswordCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newUseCmd(a),
		newMenuCmd(a),
		newStudentsCmd(a),
	)
	return root
}
