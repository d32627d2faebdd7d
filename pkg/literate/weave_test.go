package literate

import "testing"

func TestWeaveThreeBlockLinking(t *testing.T) {
	b1 := chunkBlock("Foo", "a")
	b2 := chunkBlock("Foo", "b")
	b3 := chunkBlock("Foo", "c")
	s := collect(t, b1, b2, b3)

	s.Weave()

	if b1.ID == "" || b2.ID == "" || b3.ID == "" {
		t.Fatal("Weave() left a contributing block without an identifier")
	}
	if b1.PrevID != "" {
		t.Errorf("first block PrevID = %q, want empty", b1.PrevID)
	}
	if b1.NextID != b2.ID {
		t.Errorf("first block NextID = %q, want %q", b1.NextID, b2.ID)
	}
	if b2.PrevID != b1.ID || b2.NextID != b3.ID {
		t.Errorf("middle block links = (%q, %q), want (%q, %q)", b2.PrevID, b2.NextID, b1.ID, b3.ID)
	}
	if b3.PrevID != b2.ID {
		t.Errorf("last block PrevID = %q, want %q", b3.PrevID, b2.ID)
	}
	if b3.NextID != "" {
		t.Errorf("last block NextID = %q, want empty", b3.NextID)
	}

	for i, b := range []*Block{b1, b2, b3} {
		if b.Seq != i+1 || b.Parts != 3 {
			t.Errorf("block %d seq/parts = %d/%d, want %d/3", i+1, b.Seq, b.Parts, i+1)
		}
	}
}

func TestWeaveSingleBlockHasNoLinks(t *testing.T) {
	b := chunkBlock("Solo chunk", "x")
	s := collect(t, b)

	s.Weave()

	if b.ID == "" {
		t.Error("single block should still get an anchor")
	}
	if b.PrevID != "" || b.NextID != "" {
		t.Errorf("single block links = (%q, %q), want none", b.PrevID, b.NextID)
	}
	if b.Seq != 1 || b.Parts != 1 {
		t.Errorf("single block seq/parts = %d/%d, want 1/1", b.Seq, b.Parts)
	}
}

func TestWeaveKeepsHostAssignedIdentifier(t *testing.T) {
	b1 := chunkBlock("Foo", "a")
	b1.ID = "custom-anchor"
	b2 := chunkBlock("Foo", "b")
	s := collect(t, b1, b2)

	s.Weave()

	if b1.ID != "custom-anchor" {
		t.Errorf("host-assigned ID overwritten: %q", b1.ID)
	}
	if b2.PrevID != "custom-anchor" {
		t.Errorf("neighbor link = %q, want host-assigned anchor", b2.PrevID)
	}
}

func TestWeaveAnchorDerivation(t *testing.T) {
	tests := []struct {
		name  string
		title string
		seq   int
		want  string
	}{
		{
			name:  "plain title",
			title: "main loop",
			seq:   1,
			want:  "main-loop-1",
		},
		{
			name:  "punctuation collapses to single dash",
			title: "Read & parse (fast)",
			seq:   2,
			want:  "read-parse-fast-2",
		},
		{
			name:  "digits survive",
			title: "pass 2 cleanup",
			seq:   3,
			want:  "pass-2-cleanup-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueAnchor(tt.title, tt.seq, map[string]bool{})
			if got != tt.want {
				t.Errorf("uniqueAnchor(%q, %d) = %q, want %q", tt.title, tt.seq, got, tt.want)
			}
		})
	}
}

func TestWeaveAnchorCollisionsDisambiguate(t *testing.T) {
	used := map[string]bool{}
	a := uniqueAnchor("Foo Bar", 1, used)
	b := uniqueAnchor("foo bar", 1, used)
	if a == b {
		t.Errorf("colliding anchors not disambiguated: %q", a)
	}
}
