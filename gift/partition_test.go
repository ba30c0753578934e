package gift

import "testing"

func TestNumBlocks(t *testing.T) {
	got := NumBlocks(Axis3{2001, 2000, 1999}, Axis3{500, 500, 500})
	want := Axis3{5, 4, 4}
	if got != want {
		t.Fatalf("NumBlocks = %v, want %v", got, want)
	}
}

func TestBlockRange(t *testing.T) {
	cases := []struct {
		n, B, O, L int
		want       AxisRange
	}{
		{0, 5, 1, 10, AxisRange{0, 5, 0, 1}},
		{1, 5, 1, 10, AxisRange{4, 9, 1, 0}},
	}
	for _, c := range cases {
		got := BlockRange(c.n, c.B, c.O, c.L)
		if got != c.want {
			t.Errorf("BlockRange(%d,%d,%d,%d) = %+v, want %+v", c.n, c.B, c.O, c.L, got, c.want)
		}
	}
}

func TestImageBlockRangesAxisSplit(t *testing.T) {
	ranges := ImageBlockRanges(Axis3{5, 5, 5}, Axis3{4, 5, 6}, Axis3{0, 0, 0})
	if len(ranges) != 2 {
		t.Fatalf("len(ranges) = %d, want 2", len(ranges))
	}
	want0 := [3]AxisRange{{0, 2, 0, 0}, {0, 4, 0, 0}, {0, 4, 0, 0}}
	want1 := [3]AxisRange{{3, 4, 0, 0}, {0, 4, 0, 0}, {0, 4, 0, 0}}
	if ranges[0] != want0 {
		t.Errorf("ranges[0] = %+v, want %+v", ranges[0], want0)
	}
	if ranges[1] != want1 {
		t.Errorf("ranges[1] = %+v, want %+v", ranges[1], want1)
	}
}

func TestImageBlockRangesCoverEveryVoxelExactlyOnce(t *testing.T) {
	imageSize := Axis3{37, 23, 11}
	maxBlock := Axis3{10, 8, 4}
	overlap := Axis3{2, 3, 1}
	ranges := ImageBlockRanges(imageSize, maxBlock, overlap)

	covered := make([][][]bool, imageSize[0])
	for i := range covered {
		covered[i] = make([][]bool, imageSize[1])
		for j := range covered[i] {
			covered[i][j] = make([]bool, imageSize[2])
		}
	}
	for _, r := range ranges {
		for i := r[0].ROIStart(); i <= r[0].ROIEnd(); i++ {
			for j := r[1].ROIStart(); j <= r[1].ROIEnd(); j++ {
				for k := r[2].ROIStart(); k <= r[2].ROIEnd(); k++ {
					if covered[i][j][k] {
						t.Fatalf("voxel (%d,%d,%d) covered by more than one ROI", i, j, k)
					}
					covered[i][j][k] = true
				}
			}
		}
	}
	for i := range covered {
		for j := range covered[i] {
			for k := range covered[i][j] {
				if !covered[i][j][k] {
					t.Fatalf("voxel (%d,%d,%d) not covered by any ROI", i, j, k)
				}
			}
		}
	}
}

func TestBlockRangeBoundaryCases(t *testing.T) {
	// Overlap = 0 => pad_start = pad_end = 0, ROI = origin.
	r := BlockRange(0, 10, 0, 10)
	if r.PadStart != 0 || r.PadEnd != 0 {
		t.Fatalf("zero overlap produced nonzero pads: %+v", r)
	}
	if r.ROIStart() != r.OriginStart || r.ROIEnd() != r.OriginEnd {
		t.Fatalf("zero overlap: ROI should equal origin, got %+v", r)
	}

	// max_block >= image_size => exactly one block with zero overlap.
	n := NumBlocks(Axis3{10, 10, 10}, Axis3{50, 50, 50})
	if n != (Axis3{1, 1, 1}) {
		t.Fatalf("NumBlocks with oversized max_block = %v, want {1,1,1}", n)
	}
}

func TestBlockRangeClipsFinalBlock(t *testing.T) {
	// image_size not divisible by max_block => last block's max_coord
	// clipped to image_size-1 and pad_end = 0.
	r := BlockRange(1, 4, 1, 5)
	if r.OriginEnd != 4 || r.PadEnd != 0 {
		t.Fatalf("BlockRange(1,4,1,5) = %+v, want OriginEnd=4, PadEnd=0", r)
	}
}

func TestBroadcastScalarOrVector(t *testing.T) {
	got, err := BroadcastScalarOrVector([]int{7})
	if err != nil || got != (Axis3{7, 7, 7}) {
		t.Fatalf("broadcast scalar: got %v, %v", got, err)
	}
	got, err = BroadcastScalarOrVector([]int{1, 2, 3})
	if err != nil || got != (Axis3{1, 2, 3}) {
		t.Fatalf("pass-through vector: got %v, %v", got, err)
	}
	if _, err := BroadcastScalarOrVector([]int{1, 2}); err == nil {
		t.Fatal("expected ErrInvalidArgument for length-2 vector")
	}
}
