package interfaces

import (
	"io"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
)

// Renderer draws the three views. Implementations must not modify the
// views they are given and return model.ErrEmptyView when there is
// nothing to draw.
type Renderer interface {
	RenderBar(w io.Writer, v *model.BarView) error
	RenderScatter(w io.Writer, v *model.ScatterView) error
	RenderPie(w io.Writer, v *model.PieView) error
}
