// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Requester: Authenticated HTTP calls against Paperless-ngx, single or paginated
//   - BinaryStore: Binary attachment storage (upload source, download target)
//   - CredentialsProvider: Resolves the instance domain and API token
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
