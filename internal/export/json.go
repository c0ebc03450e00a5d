package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes the document as indented JSON for sharing or backup.
func JSON(doc Document, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return nil
}
