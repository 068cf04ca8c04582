package config

// ConfigProvider defines the interface for configuration access
type ConfigProvider interface {
	Raw() map[string]any
	GetSettings() Settings
	GetFromEmail() string
	GetFromName() string
	IsHTML() bool
	IsSMTP() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetLogPath() string
	GetNATSURL() string
	GetNATSSubject() string
}

// ConfigImpl implements ConfigProvider interface
type ConfigImpl struct {
	f *File
}

// NewConfigProvider creates a new ConfigProvider instance
func NewConfigProvider(f *File) ConfigProvider {
	return &ConfigImpl{f: f}
}

func (c *ConfigImpl) Raw() map[string]any {
	return c.f.Raw
}

func (c *ConfigImpl) GetSettings() Settings {
	return c.f.Settings
}

func (c *ConfigImpl) GetFromEmail() string {
	return c.f.Settings.FromEmail
}

func (c *ConfigImpl) GetFromName() string {
	return c.f.Settings.FromName
}

func (c *ConfigImpl) IsHTML() bool {
	return c.f.Settings.IsHTML
}

func (c *ConfigImpl) IsSMTP() bool {
	return c.f.Settings.IsSMTP()
}

func (c *ConfigImpl) GetSMTPHost() string {
	if c.f.Settings.SMTP == nil {
		return ""
	}
	return c.f.Settings.SMTP.Host
}

func (c *ConfigImpl) GetSMTPPort() int {
	if c.f.Settings.SMTP == nil {
		return 0
	}
	return c.f.Settings.SMTP.Port
}

func (c *ConfigImpl) GetLogPath() string {
	return c.f.LogPath
}

func (c *ConfigImpl) GetNATSURL() string {
	return c.f.NATSURL
}

func (c *ConfigImpl) GetNATSSubject() string {
	return c.f.NATSSubject
}
