// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"fromName"`
	// AppURL is embedded in notification bodies so recipients can jump
	// straight to the form.
	AppURL string `mapstructure:"appURL"`
}

type WorkflowConfig struct {
	// ManagerCode is the shared passcode checked on approve/reject.
	ManagerCode string `mapstructure:"managerCode"`
	// EmailDomain is the suffix a responsible e-mail must contain.
	EmailDomain string `mapstructure:"emailDomain"`
	// EscalationMinutes: records whose trigger exceeds this are also
	// reported to EscalationRecipients.
	EscalationMinutes    int      `mapstructure:"escalationMinutes"`
	EscalationRecipients []string `mapstructure:"escalationRecipients"`
}

type MESConfig struct {
	SheetName          string `mapstructure:"sheetName"`
	MinDurationMinutes int    `mapstructure:"minDurationMinutes"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	MES      MESConfig      `mapstructure:"mes"`
	S3       S3Config       `mapstructure:"s3"`
}

// LoadConfig reads configuration from config.yaml and overrides it with
// environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("smtp.host", "SMTP_HOST")
	viper.BindEnv("smtp.port", "SMTP_PORT")
	viper.BindEnv("smtp.username", "SMTP_USERNAME")
	viper.BindEnv("smtp.password", "SMTP_PASSWORD")
	viper.BindEnv("smtp.from", "SMTP_FROM")
	viper.BindEnv("smtp.appURL", "SMTP_APP_URL")
	viper.BindEnv("workflow.managerCode", "WORKFLOW_MANAGER_CODE")
	viper.BindEnv("workflow.emailDomain", "WORKFLOW_EMAIL_DOMAIN")
	viper.BindEnv("s3.enabled", "S3_ENABLED")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")

	setDefaults()

	// If the file is missing Viper falls back to env vars and defaults.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.dbName", "st-5why")
	viper.SetDefault("smtp.port", 465)
	viper.SetDefault("smtp.fromName", "Ambev 5 Porques")
	viper.SetDefault("workflow.managerCode", "GestorAmbev")
	viper.SetDefault("workflow.emailDomain", "@ambev.com.br")
	viper.SetDefault("workflow.escalationMinutes", 60)
	viper.SetDefault("workflow.escalationRecipients", []string{
		"marius.lisboa@gmail.com",
		"BRMAI0514@ambev.com.br",
	})
	viper.SetDefault("mes.sheetName", "Parada")
	viper.SetDefault("mes.minDurationMinutes", 30)
}
