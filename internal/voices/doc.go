// Package voices lists the voices a synthesis provider offers for a locale,
// and for OpenAI the speech models reachable with the configured key.
package voices
