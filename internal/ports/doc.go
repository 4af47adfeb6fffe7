// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [RecordSource]: enumerates and reads candidate input items
//   - [Destination]: writes routed copies into the valid and invalid areas
//   - [ResultObserver]: receives every finished item (metrics, progress)
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with the file
// system and zerolog.
package ports
