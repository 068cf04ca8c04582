package cmd

import (
	"os"
	"strconv"

	"github.com/ryan-gang/rawmail/internal/config"
	"github.com/ryan-gang/rawmail/internal/util"
	cli "github.com/ryan-gang/rawmail/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure rawmail settings",
	Long: `Configure the sender, the SMTP server and the optional NATS url used to
publish send events. An existing configuration is updated in place.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(configPath); err != nil {
			cli.CyanBold.Println("Creating new configuration...")
			f, err := config.CreateConfig()
			if err != nil {
				util.LogError(util.ConfigError, "creating configuration", err)
				os.Exit(1)
			}
			if err := config.Save(f, configPath); err != nil {
				util.LogError(util.ConfigError, "saving configuration", err)
				os.Exit(1)
			}
			cli.Green.Printf("Configuration saved to %s\n", configPath)
			printNextSteps(f)
			return
		}

		cli.CyanBold.Println("Updating existing configuration...")
		f, err := config.Load(configPath)
		if err != nil {
			util.LogError(util.ConfigError, "loading configuration", err)
			os.Exit(1)
		}

		printSettings(f)

		cli.CyanBold.Println("\nUpdate sender settings? (y/n):")
		if isYes(cli.ScanlineTrim()) {
			s := f.Settings
			cli.Cyan.Printf("Sender email address (current: %s): ", s.FromEmail)
			if v := cli.ScanlineTrim(); v != "" {
				s.FromEmail = v
			}
			cli.Cyan.Printf("Sender display name (current: %s): ", s.FromName)
			if v := cli.ScanlineTrim(); v != "" {
				s.FromName = v
			}
			cli.Cyan.Printf("Reply-to address (current: %s, - to remove): ", replyToEmail(s))
			switch v := cli.ScanlineTrim(); v {
			case "":
			case "-":
				s.ReplyTo = nil
			default:
				s.ReplyTo = &config.ReplyTo{Email: v}
			}
			f.Settings = s
		}

		if f.Settings.SMTP != nil {
			cli.CyanBold.Println("\nUpdate SMTP settings? (y/n):")
			if isYes(cli.ScanlineTrim()) {
				updateSMTP(f.Settings.SMTP)
			}
		}

		cli.CyanBold.Println("\nUpdate event publishing? (y/n):")
		if isYes(cli.ScanlineTrim()) {
			cli.Cyan.Printf("NATS url (current: %s, empty to disable): ", f.NATSURL)
			f.NATSURL = cli.ScanlineTrim()
			f.NATSSubject = ""
			if f.NATSURL != "" {
				cli.Cyan.Printf("NATS subject (default: %s): ", config.DefaultNATSSubject)
				f.NATSSubject = cli.ScanlineTrim()
				if f.NATSSubject == "" {
					f.NATSSubject = config.DefaultNATSSubject
				}
			}
		}

		if err := config.Save(f, configPath); err != nil {
			util.LogError(util.ConfigError, "saving configuration", err)
			os.Exit(1)
		}
		cli.Green.Println("Configuration updated successfully!")
		printNextSteps(f)
	},
}

func updateSMTP(s *config.SMTPSettings) {
	cli.Cyan.Printf("SMTP server address (current: %s): ", s.Host)
	if v := cli.ScanlineTrim(); v != "" {
		s.Host = v
	}
	cli.Cyan.Printf("SMTP port (current: %d): ", s.Port)
	if v := cli.ScanlineTrim(); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.Port = port
		} else {
			cli.Red.Println("Invalid port, keeping", s.Port)
		}
	}
	cli.Cyan.Printf("Security, ssl or tls (current: %s): ", s.Security)
	switch v := cli.ScanlineTrim(); v {
	case config.SecuritySSL, config.SecurityTLS:
		s.Security = v
	case "":
	default:
		cli.Red.Println("Unknown security, keeping", s.Security)
	}
	cli.Cyan.Printf("SMTP password for %s (empty keeps the current one): ", s.Username)
	if v := cli.ScanlineTrim(); v != "" {
		s.Password = v
	}
}

func isYes(response string) bool {
	return response == "y" || response == "Y" || response == "yes"
}

func replyToEmail(s config.Settings) string {
	if s.ReplyTo == nil {
		return ""
	}
	return s.ReplyTo.Email
}

func printNextSteps(f *config.File) {
	cli.CyanBold.Println("\nNext steps:")
	cli.Cyan.Println("- Run 'rawmail show' to review the effective settings")
	cli.Cyan.Println("- Run 'rawmail send --to <address> -s <subject> -b <body>' to send a message")
	if f.NATSURL == "" {
		cli.Cyan.Println("- Run 'rawmail configure' again to publish send events to NATS")
	}
}
