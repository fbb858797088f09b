package simplify

import (
	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Reckon extrapolates the motion between anchorStart and anchorEnd to the
// time of actual and returns how far the prediction lands from actual, in
// meters. Times before anchorEnd extrapolate backwards. Anchors with no
// elapsed time predict no motion.
func Reckon(anchorStart, anchorEnd, actual track.Fix, k geo.Kernel) float64 {
	a, b := anchorStart.Point(), anchorEnd.Point()

	var speed float64
	if elapsed := anchorEnd.Time.Sub(anchorStart.Time).Seconds(); elapsed > 0 {
		speed = k.Distance(a, b) / elapsed
	}
	travelled := speed * actual.Time.Sub(anchorEnd.Time).Seconds()
	predicted := k.Predict(b, travelled, k.FinalBearing(a, b))
	return k.Distance(predicted, actual.Point())
}

type anchorExtrapolation struct {
	tolerance float64
	kernel    geo.Kernel
	guard     orderGuard
	kept      []track.Fix
	anchors   [2]track.Fix
}

func newAnchorExtrapolation(s AnchorExtrapolation, k geo.Kernel) *anchorExtrapolation {
	return &anchorExtrapolation{tolerance: s.Tolerance, kernel: k}
}

func (d *anchorExtrapolation) Name() string { return AnchorExtrapolation{}.Name() }

func (d *anchorExtrapolation) Len() int { return len(d.kept) }

func (d *anchorExtrapolation) Trajectory() []track.Fix {
	return append([]track.Fix(nil), d.kept...)
}

func (d *anchorExtrapolation) Append(f track.Fix) error {
	if err := d.guard.check(f); err != nil {
		return err
	}
	d.guard.accept(f)

	switch len(d.kept) {
	case 0:
		d.kept = append(d.kept, f)
		return nil
	case 1:
		d.anchors = [2]track.Fix{d.kept[0], f}
		d.kept = append(d.kept, f)
		return nil
	}

	last := len(d.kept) - 1
	pred := d.kept[last]
	if Reckon(d.anchors[0], d.anchors[1], f, d.kernel) > d.tolerance {
		d.anchors = [2]track.Fix{pred, f}
		d.kept = append(d.kept, f)
		return nil
	}
	// The predecessor was predictable: replace it with f.
	d.kept[last] = f
	d.anchors[1] = f
	return nil
}
