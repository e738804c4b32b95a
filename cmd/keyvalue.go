package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zcached/go-zcached/resp"
)

var (
	// keyValueCommands represents the KV command group
	keyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value operations",
		PersistentPreRunE: setupClient,
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Get(args[0])
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Set(args[0], args[1])
			if result.Failure() {
				return result.Err()
			}
			fmt.Println("set successfully")
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes the record for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.Delete(args[0])
			if result.Failure() {
				return result.Err()
			}
			fmt.Println("deleted successfully")
			return nil
		},
	}

	mgetCmd = &cobra.Command{
		Use:   "mget [key]...",
		Short: "Reads the values for multiple keys at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := cli.MGet(args...)
			if result.Failure() {
				return result.Err()
			}
			fmt.Println(resp.Sprint(result.Value()))
			return nil
		},
	}

	msetCmd = &cobra.Command{
		Use:   "mset [key value]...",
		Short: "Sets multiple key-value pairs at once",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("mset requires an even number of arguments (key value pairs)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := make(map[string]any, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				pairs[args[i]] = args[i+1]
			}
			result := cli.MSet(pairs)
			if result.Failure() {
				return result.Err()
			}
			fmt.Println("mset successfully")
			return nil
		},
	}

	existsCmd = &cobra.Command{
		Use:   "exists [key]",
		Short: "Checks whether a key is present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%t\n", cli.Exists(args[0]))
			return nil
		},
	}
)

func init() {
	// Add common connection flags to the KV command
	setupClientFlags(keyValueCommands)

	// Add subcommands
	keyValueCommands.AddCommand(getCmd)
	keyValueCommands.AddCommand(setCmd)
	keyValueCommands.AddCommand(delCmd)
	keyValueCommands.AddCommand(mgetCmd)
	keyValueCommands.AddCommand(msetCmd)
	keyValueCommands.AddCommand(existsCmd)
}
