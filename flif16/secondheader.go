package flif16

import "github.com/cocosip/go-flif16/flif16/rac"

// parseSecondHeader reads the RAC-coded fields that follow the metadata
// section (spec §6 "Bitstream second header"). It mutates d's sh* fields
// and returns done=true once every field for this stream's shape (channel
// count, frame count) has been read.
func (d *Decoder) parseSecondHeader() (bool, error) {
	for {
		switch d.shSeg {
		case 0: // per-channel bpc, only when the marker byte was '0'
			if d.bpcMarker != '0' {
				switch d.bpcMarker {
				case '1':
					d.bpc = 255
				default:
					d.bpc = 65535
				}
				d.shSeg = 1
				continue
			}
			for d.channelIdx < d.channels {
				if d.bpcUniform == nil {
					d.bpcUniform = rac.NewUniform(1, 15)
				}
				v, err := d.bpcUniform.Step(d.rac)
				if err != nil {
					return false, err
				}
				d.bpcUniform = nil
				bits := int32(v)
				d.bpcPerChannel = append(d.bpcPerChannel, (int32(1)<<uint(bits))-1)
				d.channelIdx++
			}
			d.bpc = d.bpcPerChannel[0]
			for _, v := range d.bpcPerChannel {
				if v > d.bpc {
					d.bpc = v
				}
			}
			d.channelIdx = 0
			d.shSeg = 1

		case 1: // alphazero
			if d.channels <= 3 {
				d.shSeg = 2
				continue
			}
			if d.alphazeroRead == nil {
				d.alphazeroRead = rac.NewUniform(0, 1)
			}
			v, err := d.alphazeroRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			d.alphazeroRead = nil
			d.alphazero = v != 0
			d.shSeg = 2

		case 2: // loop count
			if d.frames <= 1 {
				d.shSeg = 3
				continue
			}
			if d.loopsRead == nil {
				d.loopsRead = rac.NewUniform(0, 100)
			}
			v, err := d.loopsRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			d.loopsRead = nil
			d.loops = int32(v)
			d.shSeg = 3

		case 3: // per-frame delays
			if d.frames <= 1 {
				d.shSeg = 4
				continue
			}
			for d.delayIdx < d.frames {
				if d.delayRead == nil {
					d.delayRead = rac.NewUniform(0, 60000)
				}
				v, err := d.delayRead.Step(d.rac)
				if err != nil {
					return false, err
				}
				d.delayRead = nil
				d.delays = append(d.delays, int32(v))
				d.delayIdx++
			}
			d.shSeg = 4

		case 4: // customalpha
			if d.customAlphaRead == nil {
				d.customAlphaRead = rac.NewUniform(0, 1)
			}
			v, err := d.customAlphaRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			d.customAlphaRead = nil
			d.customAlpha = v != 0
			if !d.customAlpha {
				d.shSeg = 8
				continue
			}
			d.shSeg = 5

		case 5: // cut
			if d.cutRead == nil {
				d.cutRead = rac.NewUniform(1, 128)
			}
			v, err := d.cutRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			d.cutRead = nil
			d.cut = int(v)
			d.shSeg = 6

		case 6: // alphadiv
			if d.alphaDivRead == nil {
				d.alphaDivRead = rac.NewUniform(2, 128)
			}
			v, err := d.alphaDivRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			d.alphaDivRead = nil
			d.alphaDiv = 0xFFFFFFFF / uint32(v)
			d.shSeg = 7

		case 7: // custombc, always rejected
			if d.custombcRead == nil {
				d.custombcRead = rac.NewUniform(0, 1)
			}
			v, err := d.custombcRead.Step(d.rac)
			if err != nil {
				return false, err
			}
			if v != 0 {
				return false, ErrUnsupported
			}
			d.custombcRead = nil
			d.shSeg = 8

		case 8:
			return true, nil
		}
	}
}
