package bind_group_provider

// BufferWrite is one queued write into a provider's buffer. Writes to bindings the provider
// has no buffer for are skipped by the backend.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// UniformWrite returns a write replacing the whole uniform at binding 0 of p.
//
// Parameters:
//   - p: the provider owning the uniform buffer
//   - data: the packed uniform bytes
//
// Returns:
//   - BufferWrite: the write
func UniformWrite(p BindGroupProvider, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: 0, Data: data}
}
