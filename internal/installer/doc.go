// Package installer defines the Installer interface for installing a generated
// project's dependencies and provides a Node.js package-manager implementation
// (npm, pnpm or yarn). Dispatch selects the implementation by name.
package installer
