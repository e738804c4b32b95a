package cmd

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zcached/go-zcached/client"
)

const (
	// wrap is the number of characters to wrap the help text at
	wrap int = 50
)

// wrapString wraps a string at wrap characters
func wrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// setupClientFlags adds the common connection flags to a command
func setupClientFlags(cmd *cobra.Command) {
	key := "host"
	cmd.PersistentFlags().String(key, "localhost", wrapString("The host address of the zcached server"))

	key = "port"
	cmd.PersistentFlags().Int(key, 7556, wrapString("The port number of the zcached server"))

	key = "pool-size"
	cmd.PersistentFlags().Int(key, 1, wrapString("Number of connections in the connection pool"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 15, wrapString("The maximum time in seconds to wait for a response from the server"))

	key = "attempts"
	cmd.PersistentFlags().Int(key, 3, wrapString("The maximum number of attempts to establish a connection"))

	key = "reconnect"
	cmd.PersistentFlags().Bool(key, true, wrapString("Whether to automatically reconnect broken connections"))

	key = "buffer-size"
	cmd.PersistentFlags().Int(key, 2048, wrapString("The size of the receive buffer in bytes"))

	key = "tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, wrapString("Whether to enable TCP_NODELAY on the socket"))

	key = "tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, wrapString("The keepalive interval for the socket (in seconds, 0 to disable)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", wrapString("Log level (debug, info, warn, error)"))
}

// initClientConfig initializes configuration from environment variables
func initClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("zcached")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// bindCommandFlags binds the flags of a command to viper
func bindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// getClientConfig reads the client configuration from viper
func getClientConfig() client.Config {
	conf := client.DefaultConfig(viper.GetString("host"), viper.GetInt("port"))
	conf.PoolSize = viper.GetInt("pool-size")
	conf.TimeoutLimit = time.Duration(viper.GetInt("timeout")) * time.Second
	conf.ConnectionAttempts = viper.GetInt("attempts")
	conf.Reconnect = viper.GetBool("reconnect")
	conf.BufferSize = viper.GetInt("buffer-size")
	conf.TCPNoDelay = viper.GetBool("tcp-nodelay")
	conf.TCPKeepAliveSec = viper.GetInt("tcp-keepalive")
	return conf
}
