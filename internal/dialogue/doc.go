// Package dialogue turns an annotated dialogue (HTML with tagged phrases, a
// YAML script or the built-in restaurant script) into per-line audio plus
// aggregate tracks per section, per role and for the whole document.
package dialogue
