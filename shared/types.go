package shared

type ServerConfig struct {
	Lifeline LifelineConfig `mapstructure:"lifeline" validate:"required"`
	Google   GoogleConfig   `mapstructure:"google"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
}

type LifelineConfig struct {
	AuthSecret string         `mapstructure:"authSecret" validate:"required"`
	Listener   ListenerConfig `mapstructure:"listener" validate:"required"`
	Cron       CronConfig     `mapstructure:"cron"`
	Probe      ProbeConfig    `mapstructure:"probe"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone"`
}

type ProbeConfig struct {
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket           string      `mapstructure:"bucket" validate:"required_with=EnableDbBackup"`
	Prefix           string      `mapstructure:"prefix" validate:"required_with=EnableDbBackup"`
	DbBackupSchedule string      `mapstructure:"dbBackupSchedule" validate:"required_with=EnableDbBackup"`
	EnableDbBackup   interface{} `mapstructure:"enableDbBackup" validate:"omitempty,bool"`
}

type TwilioConfig struct {
	AccountSid          string `mapstructure:"accountSid"`
	AuthToken           string `mapstructure:"authToken"`
	MessagingServiceSid string `mapstructure:"messagingServiceSid"`
}

// Enabled reports whether enough is configured to send through Twilio.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSid != "" && c.AuthToken != "" && c.MessagingServiceSid != ""
}
