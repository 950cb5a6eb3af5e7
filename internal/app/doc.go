// Package app wires the application together: configuration, logging, the
// annotation registry, the deployment-file loader, the composition engine,
// and the orchestration platform client.
package app
