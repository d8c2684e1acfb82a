package hostenv

// redacted is what a Secret formats as, regardless of verb.
const redacted = "<redacted>"

// Secret holds a credential value. It has no printable form: String and
// GoString return a fixed marker, so a Secret passed to logging or %v/%#v
// formatting can never leak its content. Callers that genuinely need the
// value (exporting credentials for the cache tool) must say so with Reveal.
type Secret struct {
	value string
}

// NewSecret wraps a raw credential value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Secret reads key from the environment as a credential.
func (e *Environment) Secret(key string) Secret {
	return Secret{value: e.Get(key)}
}

// IsSet reports whether the credential is present, without exposing it.
func (s Secret) IsSet() bool {
	return s.value != ""
}

// Reveal returns the raw credential value.
func (s Secret) Reveal() string {
	return s.value
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return redacted
}
