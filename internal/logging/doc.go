// Package logging provides concrete implementations of the shadowforensic.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes plain messages to stderr with thread-safe output
//   - LogrusLogger: Writes JSON entries through logrus (--log-format json)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
