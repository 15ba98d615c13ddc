package ggrender

import (
	"fmt"

	"github.com/gogpu/gg/text"
)

// Shaper names accepted by SetShaper.
const (
	ShaperBuiltin = "builtin"
	ShaperGoText  = "gotext"
)

// SetShaper selects gg's process-wide text shaper: "builtin" (gg's own) or
// "gotext" (HarfBuzz shaping from go-text/typesetting, with kerning and
// ligatures). An empty name selects the builtin shaper.
func SetShaper(name string) error {
	switch name {
	case "", ShaperBuiltin:
		text.SetShaper(nil)
	case ShaperGoText:
		text.SetShaper(text.NewGoTextShaper())
	default:
		return fmt.Errorf("ggrender: unknown shaper %q (valid: %s, %s)", name, ShaperBuiltin, ShaperGoText)
	}
	return nil
}
