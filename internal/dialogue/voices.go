package dialogue

import "strings"

// DefaultRoleVoice is used for every role missing from a VoiceMap
const DefaultRoleVoice = "fr-FR-Wavenet-E"

// DefaultVoices returns the voices of the built-in restaurant script
func DefaultVoices() map[string]string {
	return map[string]string{
		"serveur": "fr-FR-Wavenet-D",
		"client":  DefaultRoleVoice,
	}
}

// VoiceMap resolves the voice speaking a role
type VoiceMap struct {
	voices   map[string]string
	fallback string
}

// NewVoiceMap builds a case-insensitive role lookup. An empty fallback means
// DefaultRoleVoice.
func NewVoiceMap(voices map[string]string, fallback string) VoiceMap {
	if fallback == "" {
		fallback = DefaultRoleVoice
	}
	m := VoiceMap{voices: make(map[string]string, len(voices)), fallback: fallback}
	for role, voice := range voices {
		if voice = strings.TrimSpace(voice); voice != "" {
			m.voices[strings.ToLower(role)] = voice
		}
	}
	return m
}

// For returns the voice of role
func (m VoiceMap) For(role string) string {
	if v, ok := m.voices[strings.ToLower(role)]; ok {
		return v
	}
	return m.fallback
}
