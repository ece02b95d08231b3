// Package auth provides credentials providers for the Paperless-ngx client.
//
// SettingsProvider reads the domain and token from the effective
// application settings (config file overlaid with environment variables).
// StaticProvider serves fixed credentials, for embedding and tests.
package auth
