/*
Package ports defines the driven ports (interfaces) of the local settings service.

These interfaces decouple the settings core from external implementations,
allowing it to work with various storage backends and lock providers.

# Key Interfaces

  - SettingsStore: persists one settings snapshot per account.
  - DistributedLocker: provides distributed locking for concurrent writers.
  - SettingsEngine: the stateless API adapters (HTTP, MCP) talk to.
*/
package ports
