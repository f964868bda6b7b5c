package livefile

// Document is a parsed live configuration file: a schema-free generic
// key/value object. Only keys named by the sync contract are ever mutated;
// everything else passes through untouched.
type Document map[string]any

// MergeKeys applies updates to doc and returns it. A non-nil value sets the
// key, a nil value removes it. No other key is touched, which is the single
// place the preserve-unknown-keys invariant is enforced.
func MergeKeys(doc Document, updates map[string]any) Document {
	if doc == nil {
		doc = Document{}
	}
	for key, value := range updates {
		if value == nil {
			delete(doc, key)
			continue
		}
		doc[key] = value
	}
	return doc
}

// Clone returns a shallow copy of the document. Nested values are shared;
// callers treat them as read-only.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Section returns the object value at key, or nil when the key is absent or
// not an object.
func (d Document) Section(key string) map[string]any {
	if v, ok := d[key].(map[string]any); ok {
		return v
	}
	return nil
}
