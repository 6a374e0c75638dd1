package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/jsonmend/pkg/jsonmend"
)

const modulePath = "github.com/mesh-intelligence/jsonmend"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsonmend version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "jsonmend v%s\nmodule: %s\n", jsonmend.Version, modulePath)
			return nil
		},
	}
}
