package utils

import (
	"encoding/json"
)

// PrettyJSON renders a struct, map or slice as two-space indented JSON.
func PrettyJSON(input any) ([]byte, error) {
	return json.MarshalIndent(input, "", "  ")
}
