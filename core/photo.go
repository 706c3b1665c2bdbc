package core

import (
	"encoding/json"
	"fmt"
	"time"
)

type (
	// Photo is one uploaded image. Src is a self-contained data URI.
	Photo struct {
		ID         string    `json:"id"`
		Src        string    `json:"src"`
		Name       string    `json:"name"`
		UploadDate time.Time `json:"uploadDate"`
	}

	// Collection is an ordered list of photos, newest first.
	Collection []Photo
)

// UnmarshalJSON also reads records written by older front ends: ids stored as
// JSON numbers become their decimal text, and a record with only "alt" uses
// it as the name.
func (p *Photo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		Src        string          `json:"src"`
		Name       string          `json:"name"`
		Alt        string          `json:"alt"`
		UploadDate time.Time       `json:"uploadDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := photoID(raw.ID)
	if err != nil {
		return err
	}
	name := raw.Name
	if name == "" {
		name = raw.Alt
	}

	*p = Photo{ID: id, Src: raw.Src, Name: name, UploadDate: raw.UploadDate}
	return nil
}

func photoID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("photo id %s: %w", raw, err)
	}
	return n.String(), nil
}

// Prepend returns a new collection with p in front.
func (c Collection) Prepend(p Photo) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, p)
	return append(out, c...)
}

// Without returns a copy of c with the photo identified by id removed and
// reports whether it was present. Relative order of the rest is kept.
func (c Collection) Without(id string) (Collection, bool) {
	out := make(Collection, 0, len(c))
	found := false
	for _, p := range c {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	return out, found
}

// IDs lists photo ids in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, p := range c {
		ids[i] = p.ID
	}
	return ids
}
