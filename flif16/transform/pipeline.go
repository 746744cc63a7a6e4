package transform

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// Pipeline reads the transform declaration loop (spec §4.5 "Top level"):
// repeatedly read a continue bit, then a transform id, init/read/meta it,
// and push it onto the chain, until a continue bit of 0 ends the section.
type Pipeline struct {
	ranges []*colorrange.Range
	items  []*Transform

	segment int // 0 = read continue bit, 1 = read id + init, 2 = read current's parameters, 3 = meta+push then loop
	idRead  *rac.Uniform
	cur     *Transform
}

// NewPipeline starts a Pipeline over the image's initial (pre-transform)
// range.
func NewPipeline(initial *colorrange.Range) *Pipeline {
	return &Pipeline{ranges: []*colorrange.Range{initial}}
}

// Step advances the declaration loop as far as buffered bytes allow,
// returning done=true once a continue bit of 0 has been read.
func (p *Pipeline) Step(d *rac.Decoder, ct *rac.ChanceTable) (bool, error) {
	for {
		switch p.segment {
		case 0:
			bit, err := d.ReadBitEqui()
			if err != nil {
				return false, err
			}
			if bit == 0 {
				return true, nil
			}
			p.segment = 1
		case 1:
			if p.idRead == nil {
				p.idRead = rac.NewUniform(0, int64(MaxTransformID))
			}
			v, err := p.idRead.Step(d)
			if err != nil {
				return false, err
			}
			p.idRead = nil
			kind, ok := kindForID(int32(v))
			if !ok {
				return false, ErrInvalidData
			}
			p.cur = New(kind)
			prev := p.ranges[len(p.ranges)-1]
			if err := p.cur.Init(prev); err != nil {
				return false, err
			}
			p.segment = 2
		case 2:
			if _, err := p.cur.Read(d, ct); err != nil {
				return false, err
			}
			p.segment = 3
		case 3:
			prev := p.ranges[len(p.ranges)-1]
			next := p.cur.Meta(prev)
			p.ranges = append(p.ranges, next)
			p.items = append(p.items, p.cur)
			p.cur = nil
			p.segment = 0
		}
	}
}

// FinalRange is the range in effect after every declared transform, valid
// once Step has returned done.
func (p *Pipeline) FinalRange() *colorrange.Range {
	return p.ranges[len(p.ranges)-1]
}

// Transforms returns the declared transforms in application order.
func (p *Pipeline) Transforms() []*Transform {
	return p.items
}

// Forward maps one pixel's decoded (final) values back through every
// transform's inverse, in reverse declaration order, into original pixel
// space.
func (p *Pipeline) Forward(vals []int32) []int32 {
	for i := len(p.items) - 1; i >= 0; i-- {
		vals = p.items[i].InversePixel(p.ranges[i], vals)
	}
	return vals
}
