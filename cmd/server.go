package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zcached/go-zcached/resp"
)

var (
	// serverCommands represents the server administration command group
	serverCommands = &cobra.Command{
		Use:               "server",
		Short:             "Perform server administration operations",
		PersistentPreRunE: setupClient,
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks the connection to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Ping()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists every key stored on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Keys()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	dbsizeCmd = &cobra.Command{
		Use:   "dbsize",
		Short: "Prints the number of records on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.DBSize()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	saveCmd = &cobra.Command{
		Use:   "save",
		Short: "Persists the server's records to disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Save()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	lastsaveCmd = &cobra.Command{
		Use:   "lastsave",
		Short: "Prints the timestamp of the last successful save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.LastSave()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	flushCmd = &cobra.Command{
		Use:   "flush",
		Short: "Removes all records from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Flush()
			if result.Failure() {
				return result.Err()
			}
			fmt.Println("flushed successfully")
			return nil
		},
	}
)

func init() {
	// Add common connection flags to the server command
	setupClientFlags(serverCommands)

	// Add subcommands
	serverCommands.AddCommand(pingCmd)
	serverCommands.AddCommand(keysCmd)
	serverCommands.AddCommand(dbsizeCmd)
	serverCommands.AddCommand(saveCmd)
	serverCommands.AddCommand(lastsaveCmd)
	serverCommands.AddCommand(flushCmd)
}
