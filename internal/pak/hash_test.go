package pak

import (
	"hash/fnv"
	"testing"
)

func TestHashPath(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		if HashPath("assets/icon.png") != HashPath("assets/icon.png") {
			t.Error("same input produced different keys")
		}
	})

	t.Run("MatchesFNV1a", func(t *testing.T) {
		// Already-normalized input reduces to plain 32-bit FNV-1a.
		for _, s := range []string{"assets/icon.png", "a", "", "data/textures/wall_01.dds"} {
			h := fnv.New32a()
			h.Write([]byte(s))
			if got, want := HashPath(s), h.Sum32(); got != want {
				t.Errorf("HashPath(%q) = %#x, want %#x", s, got, want)
			}
		}
	})

	t.Run("Normalization", func(t *testing.T) {
		base := HashPath("assets/icon.png")
		for _, variant := range []string{
			"Assets/Icon.PNG",
			"assets\\icon.png",
			"/assets/icon.png",
			"\\Assets\\icon.png",
		} {
			if HashPath(variant) != base {
				t.Errorf("HashPath(%q) != HashPath(%q)", variant, "assets/icon.png")
			}
		}
	})

	t.Run("DistinctPaths", func(t *testing.T) {
		if HashPath("assets/icon.png") == HashPath("assets/icon2.png") {
			t.Error("distinct paths collided (possible but wildly unlikely for these inputs)")
		}
	})
}
