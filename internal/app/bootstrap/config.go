// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for SkillForge.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SKILLFORGE_MONGO_URI, SKILLFORGE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "skillforge", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "skillforge-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Payment gateway
	{Name: "payment_key_id", Default: "", Desc: "Payment gateway key id (basic-auth user)"},
	{Name: "payment_secret", Default: "", Desc: "Payment gateway secret; signs verification digests"},
	{Name: "payment_api_url", Default: "https://api.razorpay.com/v1", Desc: "Payment gateway REST base URL"},
	{Name: "payment_currency", Default: "INR", Desc: "Currency code for payment orders"},

	// Media object store (S3-compatible)
	{Name: "media_endpoint", Default: "localhost:9000", Desc: "Object store endpoint"},
	{Name: "media_access_key", Default: "", Desc: "Object store access key"},
	{Name: "media_secret_key", Default: "", Desc: "Object store secret key"},
	{Name: "media_bucket", Default: "skillforge-media", Desc: "Bucket for uploaded media"},
	{Name: "media_use_ssl", Default: false, Desc: "Reach the object store over TLS"},
	{Name: "media_base_url", Default: "http://localhost:9000/skillforge-media", Desc: "Public URL prefix for stored objects"},
	{Name: "media_thumbnail_folder", Default: "thumbnails", Desc: "Object key prefix for course thumbnails"},
	{Name: "media_video_folder", Default: "videos", Desc: "Object key prefix for lecture videos"},
	{Name: "media_image_folder", Default: "images", Desc: "Object key prefix for display pictures"},

	// Email/SMTP configuration. Blank host logs email instead of sending.
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank for log-only delivery)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@skillforge.dev", Desc: "From email address"},
	{Name: "mail_from_name", Default: "SkillForge", Desc: "From display name"},

	// Base URL for email links (password reset)
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},

	// Notification worker pool
	{Name: "notify_workers", Default: 4, Desc: "Email worker goroutines"},
	{Name: "notify_queue_size", Default: 64, Desc: "Email queue capacity"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, SKILLFORGE_* for app),
// command-line flags, and merging with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SKILLFORGE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		PaymentKeyID:  appValues.String("payment_key_id"),
		PaymentSecret: appValues.String("payment_secret"),
		PaymentAPIURL: appValues.String("payment_api_url"),
		Currency:      appValues.String("payment_currency"),

		MediaEndpoint:   appValues.String("media_endpoint"),
		MediaAccessKey:  appValues.String("media_access_key"),
		MediaSecretKey:  appValues.String("media_secret_key"),
		MediaBucket:     appValues.String("media_bucket"),
		MediaUseSSL:     appValues.Bool("media_use_ssl"),
		MediaBaseURL:    appValues.String("media_base_url"),
		ThumbnailFolder: appValues.String("media_thumbnail_folder"),
		VideoFolder:     appValues.String("media_video_folder"),
		ImageFolder:     appValues.String("media_image_folder"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL: appValues.String("base_url"),

		NotifyWorkers:   appValues.Int("notify_workers"),
		NotifyQueueSize: appValues.Int("notify_queue_size"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is built. The MongoDB URI is checked up front so a bad
// connection string fails startup instead of the first query.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.PaymentKeyID == "" || appCfg.PaymentSecret == "" {
			return fmt.Errorf("payment_key_id and payment_secret are required in prod")
		}
		if appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("session_key must be changed from the dev default in prod")
		}
	}

	return nil
}
