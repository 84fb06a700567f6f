package users

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// User is a record as held by the collection endpoint
type User struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// NewUser is the body of a create request. The endpoint assigns the ID.
type NewUser struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// ID is a server assigned identifier. Some endpoints encode it as a number, it is always kept as a string.
type ID string

func (i ID) String() string {
	return string(i)
}

func (i *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %s", b)
	}
	*i = ID(n.String())
	return nil
}
