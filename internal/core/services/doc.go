// Package services implements the driving port interfaces.
// Services contain the core logic: scanning, extraction, the change
// watcher and broadcaster, search, and the Engine that owns them all.
// They reach disk, lexers and storage only through driven ports.
package services
