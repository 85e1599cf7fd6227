// Package observability collects the warnings and errors produced while a
// task file is parsed and resolved. Diagnostics are passed explicitly to every
// parsing call through a Sink; the caller decides where they end up (memory,
// the console, or a JSON Lines log).
package observability
