package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/carvingsite/internal/flagx"
	"github.com/dmitrijs2005/carvingsite/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "90s"-style strings and integer nanoseconds.
// Fields left out of the file keep their previous value.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	LogLevel        string         `json:"log_level"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`

	DatabaseDriver    string         `json:"database_driver"`
	DatabaseDSN       string         `json:"database_dsn"`
	DBMaxOpenConns    int            `json:"db_max_open_conns"`
	DBConnMaxIdleTime timex.Duration `json:"db_conn_max_idle_time"`
	DBConnMaxLifetime timex.Duration `json:"db_conn_max_lifetime"`

	SecretKey             string         `json:"jwt_secret"`
	TokenValidityDuration timex.Duration `json:"token_ttl"`
	AdminUsername         string         `json:"admin_username"`
	AdminPasswordHash     string         `json:"admin_password_hash"`

	StorageBackend string `json:"storage_backend"`
	ImagesRoot     string `json:"images_root"`
	ImageMaxWidth  int    `json:"image_max_width"`
	ImageMaxHeight int    `json:"image_max_height"`
	ImageQuality   int    `json:"image_quality"`
	ImageMaxPixels int    `json:"image_max_pixels"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	SMTPHost         string `json:"smtp_host"`
	SMTPPort         int    `json:"smtp_port"`
	SMTPUser         string `json:"smtp_user"`
	SMTPPassword     string `json:"smtp_password"`
	MailFrom         string `json:"smtp_from"`
	ContactRecipient string `json:"contact_recipient"`
}

// parseJson overlays values from the file given by -c / -config.
// Without the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.StringFlag(args, "c", "config")
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)

	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setInt(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	setDuration(&config.DBConnMaxIdleTime, c.DBConnMaxIdleTime)
	setDuration(&config.DBConnMaxLifetime, c.DBConnMaxLifetime)

	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenValidityDuration, c.TokenValidityDuration)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPasswordHash, c.AdminPasswordHash)

	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.ImagesRoot, c.ImagesRoot)
	setInt(&config.ImageMaxWidth, c.ImageMaxWidth)
	setInt(&config.ImageMaxHeight, c.ImageMaxHeight)
	setInt(&config.ImageQuality, c.ImageQuality)
	setInt(&config.ImageMaxPixels, c.ImageMaxPixels)
	if c.MaxUploadBytes != 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}

	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	setString(&config.SMTPHost, c.SMTPHost)
	setInt(&config.SMTPPort, c.SMTPPort)
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.ContactRecipient, c.ContactRecipient)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
