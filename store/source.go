package store

import "encoding/json"

// Source is a raw document exactly as a store returned it. Keeping the bytes
// untouched preserves the document's own field ordering, which matters when a
// caller walks an object in declaration order.
type Source string

func (d *Source) UnmarshalJSON(data []byte) (err error) {
	*d = Source(data)
	return
}

func (d *Source) MarshalJSON() ([]byte, error) {
	return []byte(*d), nil
}

// DocumentID reads the document's _id, empty when the document has none.
func (d Source) DocumentID() string {
	v := struct {
		ID string `json:"_id"`
	}{}
	if err := json.Unmarshal([]byte(d), &v); err != nil {
		return ""
	}
	return v.ID
}
