package gift

import (
	"bytes"
	"strings"
	"testing"
)

func TestDescriptorSaveLoadRoundTrip(t *testing.T) {
	d := &SplitDescriptor{
		AppName: DescriptorAppName,
		Version: DescriptorVersion,
		SourceFiles: []FileEntry{{
			Filename: "vol.mhd",
			Index:    0,
			Ranges:   FileRanges{{0, 100, 0, 0}, {0, 99, 0, 0}, {0, 9, 0, 0}},
		}},
		SplitFiles: []FileEntry{{
			Filename: "vol_split_0.mhd",
			Suffix:   "_0",
			Index:    0,
			Ranges:   FileRanges{{0, 50, 0, 5}, {0, 99, 0, 0}, {0, 9, 0, 0}},
		}},
	}
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadDescriptor(&buf)
	if err != nil {
		t.Fatalf("LoadDescriptor: %v", err)
	}
	if len(got.SplitFiles) != 1 || got.SplitFiles[0].Filename != "vol_split_0.mhd" {
		t.Fatalf("SplitFiles round trip mismatch: %+v", got.SplitFiles)
	}
}

func TestLoadDescriptorRejectsWrongAppName(t *testing.T) {
	text := `{"appname":"wrong","version":"1.0","source_files":[{}],"split_files":[]}`
	if _, err := LoadDescriptor(strings.NewReader(text)); err == nil {
		t.Fatal("expected error for wrong appname")
	}
}

func TestLoadDescriptorRejectsMultipleSourceFiles(t *testing.T) {
	text := `{"appname":"GIFT-Surg split data","version":"1.0","source_files":[{},{}],"split_files":[]}`
	if _, err := LoadDescriptor(strings.NewReader(text)); err == nil {
		t.Fatal("expected error for multiple source files")
	}
}

func TestRangesFromAxisRoundTrip(t *testing.T) {
	ranges := [3]AxisRange{
		{OriginStart: 1, OriginEnd: 2, PadStart: 3, PadEnd: 4},
		{OriginStart: 5, OriginEnd: 6, PadStart: 7, PadEnd: 8},
		{OriginStart: 9, OriginEnd: 10, PadStart: 11, PadEnd: 12},
	}
	got := AxisFromRanges(RangesFromAxis(ranges))
	if got != ranges {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, ranges)
	}
}
