// pkg/model/document.go
package model

// Document is a raw record read from the document store: the store-assigned
// identifier plus the untyped field map of the document body.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Has reports whether the field is present in the document body.
func (d Document) Has(key string) bool {
	_, ok := d.Fields[key]
	return ok
}
