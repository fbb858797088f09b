package formatter

import "encoding/json"

// BuildJSON serializes a delivery to indented JSON.
func BuildJSON(d Delivery) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
