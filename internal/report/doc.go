// Package report renders classification results for the terminal and for
// other tools.
//
// Frames can be written as a candump log (re-readable by the classifier), a
// bordered table, JSON, or YAML. Identifiers are serialised as "0x"-prefixed
// hex strings and payloads as uppercase hex so the records stay readable.
package report
