package packet

// Builder is a pure function of the configuration into buf, returning the
// number of bytes written (§4.6, §9 design notes: "model builders as a
// uniform callable"). Builders retain no state across invocations and
// never fail -- a builder that would emit an invalid length is a CLI
// validation bug, not a runtime error (§4.6 "Failure").
type Builder func(buf *Buffer, cfg *Config, src *Source) int
