// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CarrierAdapter: Fetches tracking state from a carrier backend
//   - DeliveryStore: Persistence of the ordered delivery list
//   - PackageCache: Per-delivery cache of the last successful refresh
//   - CredentialsSource: Read-only per-carrier API credentials
//   - TokenCache: Storage for carrier login tokens
//   - Notifier: One-way user notifications
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - SchedulerStore: Scheduler task state. Without it, task state lives in memory.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
