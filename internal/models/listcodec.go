package models

import "encoding/json"

// ListItem is the structured form of one extra-curricular or personal
// project entry. The text columns store a JSON array of these.
type ListItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DecodeItemList parses a stored list column. An empty, missing, or
// unparseable value decodes to nil so prompt rendering can fall back to
// its sentinel.
func DecodeItemList(raw string) []ListItem {
	if raw == "" {
		return nil
	}
	var items []ListItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// EncodeItemList serializes items for storage. A nil or empty slice
// encodes as "[]" so the column never holds SQL-null-ish garbage.
func EncodeItemList(items []ListItem) string {
	if len(items) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
