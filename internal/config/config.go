package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path"
	"strconv"
	"strings"

	"github.com/ryan-gang/rawmail/util"
	"github.com/spf13/viper"
)

// File is a loaded configuration file. Raw is handed to the composer as is;
// the remaining fields only drive the command line tool.
type File struct {
	Raw      map[string]any
	Settings Settings

	LogPath     string
	NATSURL     string
	NATSSubject string
}

const XdgConfigHome = "XDG_CONFIG_HOME"
const ConfigFolderName = "rawmail"
const DefaultNATSSubject = "rawmail.events"

// Keys read only by the command line tool.
const (
	KeyLogPath     = "log_path"
	KeyNATSURL     = "nats.url"
	KeyNATSSubject = "nats.subject"
)

var ErrConfigNotFound = errors.New("configuration file not found")

// IgnoredKeys returns the unknown keys of the file that the command line tool
// does not read either.
func (f *File) IgnoredKeys() []string {
	var keys []string
	for _, key := range f.Settings.Unknown {
		if key == KeyLogPath || key == "nats" {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func isGmail(mail string) bool {
	return strings.HasSuffix(strings.ToLower(mail), "@gmail.com")
}

func DefaultConfigPath() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("couldn't get current user: %w", err)
	}
	xdgConfigHome := os.Getenv(XdgConfigHome)
	var configFolder string
	if len(xdgConfigHome) == 0 {
		configFolder = path.Join(user.HomeDir, ".config", ConfigFolderName)
	} else {
		configFolder = path.Join(xdgConfigHome, ConfigFolderName)
	}
	if err := os.MkdirAll(configFolder, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return path.Join(configFolder, "rawmail.json"), nil
}

func setDefaults(f *File, filename string) {
	if f.LogPath == "" {
		f.LogPath = path.Join(path.Dir(filename), "rawmail.log")
	}
	if f.NATSURL != "" && f.NATSSubject == "" {
		f.NATSSubject = DefaultNATSSubject
	}
}

func exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// NewSettings returns the settings offered as defaults when creating a file.
func NewSettings() Settings {
	return Settings{
		SMTP: &SMTPSettings{
			Host:     "smtp.gmail.com",
			Port:     465,
			Auth:     true,
			Security: SecuritySSL,
		},
	}
}

// CreateConfig asks for the values of a new configuration on stdin.
func CreateConfig() (*File, error) {
	util.CyanBold.Println("CONFIGURE RAWMAIL")

	s := NewSettings()
	util.Cyan.Printf("Sender email address (eg. yourname@gmail.com) : ")
	s.FromEmail = util.ScanlineTrim()
	util.Cyan.Printf("Sender display name (empty is ok) : ")
	s.FromName = util.ScanlineTrim()

	if !isGmail(s.FromEmail) {
		util.Cyan.Println("Sender email is not a Gmail address, " +
			"enter the SMTP server of your provider or leave it empty to use the local sendmail")

		util.Cyan.Printf("SMTP server address (eg. smtp.example.com) : ")
		host := util.ScanlineTrim()
		if host == "" {
			s.SMTP = nil
			return &File{Settings: s}, nil
		}
		s.SMTP.Host = host
		for {
			util.Cyan.Printf("SMTP port (usually 587 or 465) : ")
			port, err := strconv.Atoi(util.ScanlineTrim())
			if err != nil {
				util.Red.Println("Entered port number is either invalid or not an integer, please try again")
				continue
			}
			s.SMTP.Port = port
			break
		}
		if s.SMTP.Port != 465 {
			s.SMTP.Security = SecurityTLS
		}
	}

	s.SMTP.Username = s.FromEmail
	util.Cyan.Printf("SMTP password for %s : ", s.SMTP.Username)
	s.SMTP.Password = util.ScanlineTrim()

	return &File{Settings: s}, nil
}

func handleCreation(filename string) error {
	util.Red.Println("Configuration file doesn't exist\n Answer next few questions to create config file")
	f, err := CreateConfig()
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}
	if err := Save(f, filename); err != nil {
		util.Red.Println("Error while writing config to ", filename, err)
		return err
	}
	util.Green.Printf("Config created successfully and stored at %s, you can directly edit it later on \n", filename)
	return nil
}

// LoadOrCreate loads filename, asking for a new configuration first when the
// file does not exist yet.
func LoadOrCreate(filename string) (*File, error) {
	if !exists(filename) {
		if err := handleCreation(filename); err != nil {
			return nil, err
		}
	}
	return Load(filename)
}

func LoadProvider(filename string) (ConfigProvider, error) {
	f, err := LoadOrCreate(filename)
	if err != nil {
		return nil, err
	}
	return NewConfigProvider(f), nil
}

// Load reads filename with viper; the format follows the file extension.
func Load(filename string) (*File, error) {
	if !exists(filename) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filename)
	}

	v := viper.New()
	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", filename, err)
	}

	raw := v.AllSettings()
	settings, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	f := &File{
		Raw:         raw,
		Settings:    settings,
		LogPath:     v.GetString(KeyLogPath),
		NATSURL:     v.GetString(KeyNATSURL),
		NATSSubject: v.GetString(KeyNATSSubject),
	}
	setDefaults(f, filename)
	return f, nil
}

// Save writes f to filename, the format follows the file extension.
func Save(f *File, filename string) error {
	v := viper.New()
	s := f.Settings
	v.Set(KeyFromEmail, s.FromEmail)
	v.Set(KeyFromName, s.FromName)
	v.Set(KeyIsHTML, s.IsHTML)
	if s.SMTP != nil {
		smtp := map[string]any{
			"host":     s.SMTP.Host,
			"auth":     s.SMTP.Auth,
			"username": s.SMTP.Username,
			"password": s.SMTP.Password,
			"security": s.SMTP.Security,
			"port":     s.SMTP.Port,
		}
		if s.SMTP.Timeout > 0 {
			smtp["timeout"] = s.SMTP.Timeout
		}
		if s.SMTP.LocalName != "" {
			smtp["local_name"] = s.SMTP.LocalName
		}
		v.Set(KeySMTP, smtp)
	}
	if s.ReplyTo != nil {
		v.Set(KeyReplyTo, map[string]any{"email": s.ReplyTo.Email, "name": s.ReplyTo.Name})
	}
	if f.LogPath != "" {
		v.Set(KeyLogPath, f.LogPath)
	}
	if f.NATSURL != "" {
		v.Set(KeyNATSURL, f.NATSURL)
		v.Set(KeyNATSSubject, f.NATSSubject)
	}

	if err := v.WriteConfigAs(filename); err != nil {
		return fmt.Errorf("writing config %s: %w", filename, err)
	}
	return os.Chmod(filename, 0600)
}
