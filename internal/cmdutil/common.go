package cmdutil

import (
	"strings"

	"github.com/ryan-gang/rawmail/internal/config"
	"github.com/ryan-gang/rawmail/internal/logger"
	"github.com/ryan-gang/rawmail/internal/mail"
	"github.com/ryan-gang/rawmail/internal/notify"
	"github.com/ryan-gang/rawmail/internal/util"
	"github.com/spf13/cobra"
)

// LoadConfigFromFlags loads configuration using the config flag from the command
func LoadConfigFromFlags(cmd *cobra.Command) (config.ConfigProvider, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	return config.LoadProvider(configPath)
}

// LoadConfigOrExit loads configuration and prints an error message if it fails
func LoadConfigOrExit(cmd *cobra.Command) config.ConfigProvider {
	cfg, err := LoadConfigFromFlags(cmd)
	if err != nil {
		util.LogError(util.ConfigError, "loading configuration", err)
		return nil
	}
	return cfg
}

// LoggerFromFlags builds the leveled logger honouring --verbose
func LoggerFromFlags(cmd *cobra.Command, cfg config.ConfigProvider) (logger.LoggerInterface, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logger.NewLogger(cfg, verbose)
}

// Notifiers wires the send event to the log and, when configured, to NATS.
// The returned cleanup closes the NATS connection.
func Notifiers(cfg config.ConfigProvider, log logger.LoggerInterface, listener *logger.MailListener) (*notify.Dispatcher, func()) {
	d := notify.NewDispatcher()
	d.Subscribe(mail.EventSendMessage, listener.Fire)
	defer func() {
		log.Debugf("event handlers registered for %s", strings.Join(d.Names(), ", "))
	}()

	if cfg.GetNATSURL() == "" {
		return d, func() {}
	}

	n, err := notify.ConnectNATS(cfg.GetNATSURL(), cfg.GetNATSSubject(),
		[]notify.NATSOption{notify.WithErrorHandler(func(err error) {
			log.Warnf("%s", util.FormatError(util.NotifyError, "publishing event", err))
		})})
	if err != nil {
		util.LogError(util.NotifyError, "connecting to nats", err)
		return d, func() {}
	}
	_ = d.Forward("nats", n)
	return d, func() {
		if err := n.Close(); err != nil {
			log.Warnf("closing nats connection: %v", err)
		}
	}
}

// NewComposer builds a composer for raw that logs through log and fires its
// send event on n.
func NewComposer(raw any, log logger.LoggerInterface, listener *logger.MailListener, n mail.Notifier, opts ...mail.Option) (*mail.Composer, error) {
	return mail.New(raw, append([]mail.Option{
		mail.WithLogger(log),
		mail.WithListener(listener),
		mail.WithNotifier(n),
	}, opts...)...)
}
