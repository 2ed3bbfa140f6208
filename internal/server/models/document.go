// Package models defines the schema of the persisted state document: one
// JSON object holding every user account, activation key, and broadcast.
package models

// Document is the full persisted state. All collections are optional in the
// stored file and default to empty.
type Document struct {
	Users      []*User      `json:"users"`
	Keys       []*Key       `json:"keys"`
	Broadcasts []*Broadcast `json:"broadcasts"`
}

// NewDocument returns an empty document with all collections initialized,
// so a freshly created store serializes as {"users":[],"keys":[],"broadcasts":[]}.
func NewDocument() *Document {
	return &Document{
		Users:      []*User{},
		Keys:       []*Key{},
		Broadcasts: []*Broadcast{},
	}
}

// FindUser returns the user with the given username, or nil.
func (d *Document) FindUser(username string) *User {
	for _, u := range d.Users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// FindKey returns the key with the given token, or nil.
func (d *Document) FindKey(token string) *Key {
	for _, k := range d.Keys {
		if k.Key == token {
			return k
		}
	}
	return nil
}
