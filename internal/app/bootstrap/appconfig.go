// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level); AppConfig is everything specific to SkillForge: the MongoDB
// connection, session cookies, the payment gateway credentials, SMTP, the
// object store for media, and the notification pool sizing.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: skillforge-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Payment gateway configuration
	PaymentKeyID  string // Gateway API key id (basic-auth user)
	PaymentSecret string // Gateway secret; also signs payment verification digests
	PaymentAPIURL string // Gateway REST base URL
	Currency      string // ISO currency code for orders (default: INR)

	// Media object store configuration (S3-compatible)
	MediaEndpoint  string // Object store endpoint (e.g., localhost:9000)
	MediaAccessKey string // Access key
	MediaSecretKey string // Secret key
	MediaBucket    string // Bucket for all uploaded media
	MediaUseSSL    bool   // Whether to reach the endpoint over TLS
	MediaBaseURL   string // Public URL prefix for stored objects

	// Object key prefixes per media kind
	ThumbnailFolder string
	VideoFolder     string
	ImageFolder     string

	// Email/SMTP configuration. Blank host switches the mailer to log-only
	// delivery for local development.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL for email links (password reset)
	BaseURL string

	// Notification worker pool sizing
	NotifyWorkers   int
	NotifyQueueSize int
}
