package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zcached/go-zcached/client"
)

const (
	Version = "1.0.0"
)

var (
	// cli is the shared client built by setupClient before command groups run
	cli *client.Client

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "zcached",
		Short: "client for the zcached key-value server",
		Long: fmt.Sprintf(`go-zcached (v%s)

A typed client for the zcached key-value server, with pooled
connections, automatic reconnection and a byte-exact wire codec.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of go-zcached",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-zcached v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(initClientConfig)

	// Add Commands
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(keyValueCommands)
	RootCmd.AddCommand(serverCommands)
	RootCmd.AddCommand(benchCmd)
}

// setupClient builds the shared client from the bound configuration. It is
// used as PersistentPreRunE by every command group that talks to the server.
func setupClient(cmd *cobra.Command, _ []string) error {
	if err := bindCommandFlags(cmd); err != nil {
		return err
	}

	if err := client.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	config := getClientConfig()
	cli = client.New(config)

	if !cli.Pool().IsWorking() {
		return fmt.Errorf("failed to connect to %s", config.Addr())
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
