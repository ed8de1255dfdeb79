package shared

type ServerConfig struct {
	Sqlite SqliteConfig `mapstructure:"sqlite" validate:"required"`
	Mayday MaydayConfig `mapstructure:"mayday" validate:"required"`
	Twilio TwilioConfig `mapstructure:"twilio"`
	Google GoogleConfig `mapstructure:"google"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type MaydayConfig struct {
	Cron     CronConfig     `mapstructure:"cron" validate:"required"`
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
}

// TwilioConfig holds the SMS transport credentials. The block is optional:
// when any field is missing, the server runs with SMS in simulated mode.
type TwilioConfig struct {
	AccountSid  string `mapstructure:"accountSid"`
	AuthToken   string `mapstructure:"authToken"`
	PhoneNumber string `mapstructure:"phoneNumber"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

// StorageConfig controls the optional sqlite backup & restore to google
// cloud storage. Bucket, prefix & schedule are only read when
// enableSqliteBackupAndSync is true.
type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket"`
	Prefix                    string `mapstructure:"prefix"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}
