package gift

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"testing"
)

// writeSourceVolume writes a MetaIO header+raw pair directly into the
// fake factory (bypassing SubImage) so split tests start from a known
// source volume without depending on the writer path under test.
func writeSourceVolume(t *testing.T, factory *FakeFileHandleFactory, headerPath, rawName string, dims Axis3, elementType string, raw []byte) {
	t.Helper()
	header := NewHeader()
	header.Set("ObjectType", "Image")
	header.SetDimSize([]int{dims[0], dims[1], dims[2]})
	header.Set("ElementType", elementType)
	header.Set("ElementDataFile", rawName)

	fh := NewFileHandle(headerPath, ModeWrite, factory)
	h, err := fh.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if err := header.Save(h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fh.Close()

	rawFH := NewFileHandle(rawName, ModeWrite, factory)
	rh, err := rawFH.Handle()
	if err != nil {
		t.Fatalf("Handle (raw): %v", err)
	}
	if _, err := rh.Write(raw); err != nil {
		t.Fatalf("Write (raw): %v", err)
	}
	rawFH.Close()
}

func fortranOrderedInt32Volume(dims Axis3) []byte {
	n := dims[0] * dims[1] * dims[2]
	raw := make([]byte, n*4)
	idx := 0
	for k := 0; k < dims[2]; k++ {
		for j := 0; j < dims[1]; j++ {
			for i := 0; i < dims[0]; i++ {
				v := int32(i + j*dims[0] + k*dims[0]*dims[1])
				binary.LittleEndian.PutUint32(raw[idx*4:], uint32(v))
				idx++
			}
		}
	}
	return raw
}

func TestSplitEmitsOneBlockPerPartitionAndADescriptor(t *testing.T) {
	factory := NewFakeFileHandleFactory()
	dims := Axis3{11, 22, 4}
	raw := fortranOrderedInt32Volume(dims)
	writeSourceVolume(t, factory, "source.mhd", "source.raw", dims, "MET_INT", raw)

	desc, err := Split(SplitOptions{
		SourcePath: "source.mhd",
		OutBase:    "split_out",
		MaxBlock:   Axis3{5, 5, 5},
		Overlap:    Axis3{1, 1, 1},
		Factory:    factory,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	wantBlocks := len(ImageBlockRanges(dims, Axis3{5, 5, 5}, Axis3{1, 1, 1}))
	if len(desc.SplitFiles) != wantBlocks {
		t.Fatalf("len(SplitFiles) = %d, want %d", len(desc.SplitFiles), wantBlocks)
	}
	if desc.AppName != DescriptorAppName || desc.Version != DescriptorVersion {
		t.Fatalf("descriptor appname/version = %q/%q", desc.AppName, desc.Version)
	}
	if factory.Bytes("split_out_info.gift") == nil {
		t.Fatal("expected split_out_info.gift to be written")
	}
	for i := range desc.SplitFiles {
		base := "split_out_" + strconv.Itoa(i)
		if factory.Bytes(base+".mhd") == nil {
			t.Fatalf("expected %s.mhd to be written", base)
		}
		if factory.Bytes(base+".raw") == nil {
			t.Fatalf("expected %s.raw to be written", base)
		}
	}
}

func TestSplitRejectsNonThreeDimensionalSource(t *testing.T) {
	factory := NewFakeFileHandleFactory()
	header := NewHeader()
	header.SetDimSize([]int{4, 4})
	header.Set("ElementType", "MET_INT")
	header.Set("ElementDataFile", "source.raw")
	fh := NewFileHandle("source.mhd", ModeWrite, factory)
	h, _ := fh.Handle()
	header.Save(h)
	fh.Close()

	_, err := Split(SplitOptions{
		SourcePath: "source.mhd",
		OutBase:    "out",
		MaxBlock:   Axis3{2, 2, 2},
		Overlap:    Axis3{0, 0, 0},
		Factory:    factory,
	})
	if err == nil {
		t.Fatal("expected error for NDims != 3")
	}
}

func TestSplitCombineRoundTripIdentity(t *testing.T) {
	factory := NewFakeFileHandleFactory()
	dims := Axis3{11, 22, 4}
	raw := fortranOrderedInt32Volume(dims)
	writeSourceVolume(t, factory, "source.mhd", "source.raw", dims, "MET_INT", raw)

	if _, err := Split(SplitOptions{
		SourcePath: "source.mhd",
		OutBase:    "split_out",
		MaxBlock:   Axis3{5, 5, 5},
		Overlap:    Axis3{1, 1, 1},
		Factory:    factory,
	}); err != nil {
		t.Fatalf("Split: %v", err)
	}

	if err := Combine(CombineOptions{
		DescriptorPath: "split_out_info.gift",
		OutBase:        "combined",
		Factory:        factory,
	}); err != nil {
		t.Fatalf("Combine: %v", err)
	}

	got := factory.Bytes("combined.raw")
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(raw))
	}
}
