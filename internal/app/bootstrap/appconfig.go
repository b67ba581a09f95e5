// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, body size limits). AppConfig is everything specific
// to VitaMove: the MongoDB connection, session cookies, media storage,
// SMTP, and the admin sign-in allowlist.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: vitamove-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Media storage configuration
	MediaPath      string // Local directory for uploaded files (e.g., "./uploads/media")
	MediaURLPrefix string // URL prefix for serving uploaded files (e.g., "/files")

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (empty means console sender; log instead of deliver)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@vitamove.ge)
	MailFromName string // From display name (e.g., VitaMove)

	// Admin sign-in
	AdminEmails     []string      // Addresses allowed to request an admin login code
	LoginCodeExpiry time.Duration // How long an emailed login code stays valid

	// Site identity used in email copy
	SiteName string // e.g., "VitaMove"
	BaseURL  string // e.g., "https://vitamove.ge" or "http://localhost:3000"
}
