package document

import "encoding/json"

// EncodeItems serializes line items for the single-column storage encoding.
// An empty set encodes as an empty JSON array, never null.
func EncodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// DecodeItems parses the stored line-item column.
func DecodeItems(raw []byte) ([]LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
