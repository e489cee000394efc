// Package lesson defines the canonical lesson record and loads it from a
// directory of hand-authored source files (JSON, YAML, TOML or plain
// "français = 中文" phrase lists).
package lesson
