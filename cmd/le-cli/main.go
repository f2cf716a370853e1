// Command le-cli writes log records to a logentries collector.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeffrom/logentries/client"
	"github.com/jeffrom/logentries/config"
	"github.com/jeffrom/logentries/internal"
)

func newRootCmd(v *viper.Viper, dialer client.Dialer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "le-cli",
		Short:         "send log records to logentries",
		Long:          ``,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if err := config.BindFlags(cmd.PersistentFlags(), v); err != nil {
		panic(err)
	}

	cmd.AddCommand(newWriteCmd(v, dialer))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func main() {
	err := newRootCmd(viper.New(), nil).Execute()
	// stderr can't be synced on some terminals
	internal.IgnoreError(false, internal.Sync())
	if err != nil {
		fmt.Fprintln(os.Stderr, "le-cli:", err)
		os.Exit(1)
	}
}
