package gift

import (
	"bytes"
	"strings"
	"testing"
)

// FuzzLoadHeader tests MetaIO header parsing with arbitrary text.
func FuzzLoadHeader(f *testing.F) {
	f.Add(sampleHeaderText())
	f.Add("ElementDataFile = LOCAL\n")
	f.Add("")
	f.Add("NDims\n") // no '='
	f.Add("DimSize = not a number\nElementDataFile = LOCAL\n")
	f.Add("ElementType = MET_NONSENSE\nElementDataFile = LOCAL\n")
	f.Add(strings.Repeat("Comment = x\n", 10000))

	f.Fuzz(func(t *testing.T, text string) {
		h, err := LoadHeader(strings.NewReader(text))
		if err != nil {
			return
		}

		// A successfully parsed header must always carry ElementDataFile.
		if !h.Has("ElementDataFile") {
			t.Errorf("LoadHeader succeeded without an ElementDataFile entry for input %q", text)
		}

		// Save must not panic or fail on anything LoadHeader accepted.
		var buf bytes.Buffer
		if err := h.Save(&buf); err != nil {
			t.Errorf("Save failed on a header LoadHeader accepted: %v", err)
		}
	})
}
