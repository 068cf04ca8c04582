package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/lithammer/dedent"
	"github.com/ryan-gang/rawmail/internal/cmdutil"
	"github.com/ryan-gang/rawmail/internal/config"
	"github.com/ryan-gang/rawmail/internal/logger"
	"github.com/ryan-gang/rawmail/internal/mail"
	"github.com/ryan-gang/rawmail/internal/util"
	cli "github.com/ryan-gang/rawmail/util"
	"github.com/spf13/cobra"
)

var errNoRecipients = errors.New("at least one recipient is required, use --to or --to-file")

func init() {
	rootCmd.AddCommand(sendCmd)

	f := sendCmd.Flags()
	f.StringArrayP("to", "t", nil, `Recipient list, eg. "John Smith <john@example.com>, jane@example.com"`)
	f.String("to-file", "", "File with one recipient list per line, # starts a comment")
	f.StringArray("cc", nil, "Carbon copy recipient list")
	f.StringArray("bcc", nil, "Blind carbon copy recipient list")
	f.StringP("subject", "s", "", "Subject line")
	f.StringP("body", "b", "", "Message body")
	f.String("body-file", "", "Read the message body from a file")
	f.StringArrayP("attach", "a", nil, "File to attach, may be repeated")
	f.Bool("html", false, "Send the body as HTML, overrides is_html from the config")
	f.IntP("mail-timeout", "m", 0, "SMTP timeout in seconds, increase it when attaching large files")
	f.String("dump", "", "Write the message as an .eml file into this directory instead of sending it")
	f.String("sendmail", mail.DefaultSendmailPath, "Sendmail binary used when no smtp block is configured")
	sendCmd.MarkFlagsMutuallyExclusive("body", "body-file")
}

var (
	helpSend = `Composes a message from the given flags and sends it with the configured
transport. Without an smtp block in the configuration the message is handed
to the local sendmail binary.
Recipients that the transport rejects are reported and skipped, the message
still goes out to the others.`

	exampleSend = dedent.Dedent(`
		# Send a short note
		rawmail send --to "John Smith <john@example.com>" -s "Hello" -b "See you at 10"

		# Send an HTML file with an attachment to everyone in a list
		rawmail send --to-file team.txt -s "Report" --body-file report.html --html -a report.pdf

		# Write the message to ./out instead of sending it
		rawmail send --to jane@example.com -s "Draft" -b "..." --dump out`,
	)
)

type sendOptions struct {
	to          []string
	toFile      string
	cc          []string
	bcc         []string
	subject     string
	body        string
	bodyFile    string
	attachments []string
	html        *bool
	timeout     int
	dumpDir     string
	sendmail    string
}

func sendOptionsFromFlags(cmd *cobra.Command) sendOptions {
	f := cmd.Flags()
	opts := sendOptions{}
	opts.to, _ = f.GetStringArray("to")
	opts.toFile, _ = f.GetString("to-file")
	opts.cc, _ = f.GetStringArray("cc")
	opts.bcc, _ = f.GetStringArray("bcc")
	opts.subject, _ = f.GetString("subject")
	opts.body, _ = f.GetString("body")
	opts.bodyFile, _ = f.GetString("body-file")
	opts.attachments, _ = f.GetStringArray("attach")
	opts.timeout, _ = f.GetInt("mail-timeout")
	opts.dumpDir, _ = f.GetString("dump")
	opts.sendmail, _ = f.GetString("sendmail")
	if f.Changed("html") {
		html, _ := f.GetBool("html")
		opts.html = &html
	}
	return opts
}

var sendCmd = &cobra.Command{
	Use:     "send",
	Short:   "Compose and send a message",
	Long:    helpSend,
	Example: exampleSend,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd)
		if cfg == nil {
			os.Exit(1)
		}

		log, err := cmdutil.LoggerFromFlags(cmd, cfg)
		if err != nil {
			util.LogError(util.FileError, "opening log file", err)
			os.Exit(1)
		}
		defer log.Close()

		listener := logger.NewMailListener(log)
		dispatcher, closeNotifiers := cmdutil.Notifiers(cfg, log, listener)
		defer closeNotifiers()

		opts := sendOptionsFromFlags(cmd)
		c, err := cmdutil.NewComposer(applyOverrides(cfg.GetSettings(), opts), log, listener, dispatcher,
			mail.WithTransport(func() mail.Transport {
				return mail.NewGomailTransport(mail.WithSendmailPath(opts.sendmail))
			}))
		if err != nil {
			util.LogError(util.ConfigError, "applying configuration", err)
			os.Exit(1)
		}

		if err := runSend(c, opts); err != nil {
			if errors.Is(err, errNoRecipients) || errors.Is(err, mail.ErrInvalidRecipient) {
				util.LogError(util.ValidationError, "reading recipients", err)
			} else {
				util.LogError(util.MailError, "sending message", err)
			}
			os.Exit(1)
		}
	},
}

// applyOverrides returns s with the command line settings applied on top.
func applyOverrides(s config.Settings, opts sendOptions) config.Settings {
	if opts.html != nil {
		s.IsHTML = *opts.html
	}
	if opts.timeout > 0 && s.SMTP != nil {
		smtp := *s.SMTP
		smtp.Timeout = opts.timeout
		s.SMTP = &smtp
	}
	return s
}

func recipients(lists []string, file string) ([]mail.Recipient, error) {
	if file != "" {
		lines, err := cli.ReadLines(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		lists = append(append([]string(nil), lists...), lines...)
	}

	var out []mail.Recipient
	for _, list := range lists {
		rs, err := mail.ParseAddressList(list)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

func runSend(c *mail.Composer, opts sendOptions) error {
	to, err := recipients(opts.to, opts.toFile)
	if err != nil {
		return err
	}
	if len(to) == 0 {
		return errNoRecipients
	}
	cc, err := recipients(opts.cc, "")
	if err != nil {
		return err
	}
	bcc, err := recipients(opts.bcc, "")
	if err != nil {
		return err
	}

	body := opts.body
	if opts.bodyFile != "" {
		data, err := os.ReadFile(opts.bodyFile)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
	}

	c.SetSubject(opts.subject)
	c.SetBody(body)

	accepted := 0
	for _, r := range to {
		ok, err := c.AddTo(r)
		if err != nil {
			return err
		}
		if !ok {
			util.LogErrorf(util.ValidationError, "adding recipient", "skipping %s", r)
			continue
		}
		accepted++
	}
	if accepted == 0 {
		return errNoRecipients
	}
	for _, r := range cc {
		if err := c.AddCC(r); err != nil {
			return err
		}
	}
	for _, r := range bcc {
		if err := c.AddBCC(r); err != nil {
			return err
		}
	}
	for _, path := range opts.attachments {
		c.AddAttachment(path)
	}

	if opts.dumpDir != "" {
		path, err := dump(c, opts.dumpDir)
		if err != nil {
			return err
		}
		cli.Green.Printf("Message written to %s\n", path)
		return nil
	}

	if !c.Send() {
		return c.Err()
	}
	cli.GreenBold.Printf("Sent %q to %d recipient(s)\n", c.Subject(), accepted)
	return nil
}

// dump writes the message to dir, named after its subject.
func dump(c *mail.Composer, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	name := slug.Make(c.Subject())
	if name == "" {
		name = "message"
	}
	path := filepath.Join(dir, name+".eml")

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := c.Dump(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, f.Close()
}
