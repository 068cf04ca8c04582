package cmd

import (
	"os"

	"github.com/ryan-gang/rawmail/internal/config"
	"github.com/ryan-gang/rawmail/util"
	"github.com/spf13/cobra"
)

func init() {
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		util.Red.Println("Error setting default config path: ", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringP("config", "c", configPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every step of composing and sending")
}

var rootCmd = &cobra.Command{
	Use:   "rawmail",
	Short: "Compose and send mail through sendmail or SMTP",
	Long: `rawmail composes a message from the command line and delivers it either
through the local sendmail binary or through an SMTP server, depending on
the configuration file.

The configuration holds the sender address and name, whether bodies are
HTML, an optional reply-to address and an optional smtp block with host,
port, auth, username, password and security (ssl or tls).

When a NATS url is configured every send attempt is published as an event.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		util.RedBold.Println(err)
		os.Exit(1)
	}
}
