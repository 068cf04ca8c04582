package cmd

import (
	"os"
	"strings"

	"github.com/ryan-gang/rawmail/internal/config"
	"github.com/ryan-gang/rawmail/internal/util"
	cli "github.com/ryan-gang/rawmail/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Load the configuration file and print the settings the mailer will use. Passwords are masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		f, err := config.LoadOrCreate(configPath)
		if err != nil {
			util.LogError(util.ConfigError, "loading configuration", err)
			os.Exit(1)
		}
		cli.CyanBold.Printf("Configuration %s\n", configPath)
		printSettings(f)
	},
}

func printSettings(f *config.File) {
	s := f.Settings
	cli.Cyan.Println("\nSender:")
	cli.Cyan.Printf("From: %s\n", s.FromEmail)
	cli.Cyan.Printf("Name: %s\n", s.FromName)
	cli.Cyan.Printf("HTML body: %t\n", s.IsHTML)
	if s.ReplyTo != nil {
		cli.Cyan.Printf("Reply-to: %s %s\n", s.ReplyTo.Email, s.ReplyTo.Name)
	}

	cli.Cyan.Println("\nTransport:")
	if s.SMTP == nil {
		cli.Cyan.Println("Mode: sendmail")
	} else {
		cli.Cyan.Printf("Mode: smtp %s:%d\n", s.SMTP.Host, s.SMTP.Port)
		cli.Cyan.Printf("Security: %s\n", s.SMTP.Security)
		cli.Cyan.Printf("Auth: %t\n", s.SMTP.Auth)
		if s.SMTP.Auth {
			cli.Cyan.Printf("Username: %s\n", s.SMTP.Username)
			cli.Cyan.Printf("Password: %s\n", mask(s.SMTP.Password))
		}
		if s.SMTP.Timeout > 0 {
			cli.Cyan.Printf("Timeout: %ds\n", s.SMTP.Timeout)
		}
	}

	cli.Cyan.Println("\nTool:")
	cli.Cyan.Printf("Log file: %s\n", f.LogPath)
	if f.NATSURL != "" {
		cli.Cyan.Printf("Events: %s on %s\n", f.NATSSubject, f.NATSURL)
	}
	if ignored := f.IgnoredKeys(); len(ignored) > 0 {
		cli.Magenta.Printf("Ignored keys: %s\n", strings.Join(ignored, ", "))
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}
