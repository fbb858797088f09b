package simplify

import "github.com/theoremus-urban-solutions/trajsquish/track"

type uniform struct {
	every int
	guard orderGuard
	seen  int
	kept  []track.Fix
	// provisional is set while the last kept fix is only there because
	// it is the latest one.
	provisional bool
}

func newUniform(s UniformSampling) *uniform {
	return &uniform{every: s.Every}
}

func (u *uniform) Name() string { return UniformSampling{}.Name() }

func (u *uniform) Len() int { return len(u.kept) }

func (u *uniform) Trajectory() []track.Fix {
	return append([]track.Fix(nil), u.kept...)
}

func (u *uniform) Append(f track.Fix) error {
	if err := u.guard.check(f); err != nil {
		return err
	}
	u.guard.accept(f)

	if u.provisional {
		u.kept[len(u.kept)-1] = f
	} else {
		u.kept = append(u.kept, f)
	}
	u.provisional = u.seen%u.every != 0
	u.seen++
	return nil
}
