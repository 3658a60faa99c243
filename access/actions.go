package access

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// catalogActions is the module catalog's capability map decoded with its key
// order intact. Effective actions are emitted in the module's own declaration
// order, which a plain Go map would destroy.
type catalogActions struct {
	keys   []string
	values map[string]bool
}

func (a *catalogActions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	delim, ok := t.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("actions is not an object")
	}

	a.values = map[string]bool{}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("unexpected actions key %v", keyToken)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		enabled, _ := value.(bool)
		a.keys = append(a.keys, key)
		a.values[key] = enabled
	}
	_, err = dec.Token()
	return err
}

// Active lists the generally available capability names, in catalog order.
func (a *catalogActions) Active() []string {
	active := make([]string, 0, len(a.keys))
	for _, key := range a.keys {
		if a.values[key] {
			active = append(active, key)
		}
	}
	return active
}
