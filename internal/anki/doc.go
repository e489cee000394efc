// Package anki exports a lesson as an Anki package (.apkg): one note per
// sentence with French and Chinese fields and the sentence clip embedded
// when it has been synthesised.
package anki
