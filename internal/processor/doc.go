// Package processor runs the lesson pipeline. It loads every lesson source,
// synthesises the missing sentence audio, writes one artifact per lesson and
// active output format, and regenerates the root index. This package serves
// as the main coordinator between all other components.
package processor
