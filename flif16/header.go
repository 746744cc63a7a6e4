package flif16

// parseHeader advances the raw (pre-RAC) magic/dimensions/metadata parse
// as far as buffered bytes allow. It mutates d's h* fields and returns
// done=true once the metadata zero-byte sentinel has been consumed.
func (d *Decoder) parseHeader() (bool, error) {
	for {
		switch d.hSeg {
		case 0: // magic "FLIF"
			for d.magicIdx < 4 {
				b, ok := d.src.GetByte()
				if !ok {
					return false, ErrNeedMoreData
				}
				if b != "FLIF"[d.magicIdx] {
					return false, ErrInvalidData
				}
				d.magicIdx++
			}
			d.hSeg = 1

		case 1: // animation/channels byte
			b, ok := d.src.GetByte()
			if !ok {
				return false, ErrNeedMoreData
			}
			hi, lo := b>>4, b&0x0f
			d.animated = hi >= 5
			switch lo {
			case 1, 3, 4:
				d.channels = int(lo)
			default:
				return false, ErrInvalidData
			}
			d.hSeg = 2

		case 2: // bits-per-channel marker
			b, ok := d.src.GetByte()
			if !ok {
				return false, ErrNeedMoreData
			}
			switch b {
			case '0', '1', '2':
				d.bpcMarker = b
			default:
				return false, ErrInvalidData
			}
			d.hSeg = 3

		case 3: // width - 1
			if d.vr == nil {
				d.vr = &varintReader{}
			}
			v, err := d.vr.step(d.src)
			if err != nil {
				return false, err
			}
			d.width = int(v) + 1
			d.vr = nil
			d.hSeg = 4

		case 4: // height - 1
			if d.vr == nil {
				d.vr = &varintReader{}
			}
			v, err := d.vr.step(d.src)
			if err != nil {
				return false, err
			}
			d.height = int(v) + 1
			d.vr = nil
			d.hSeg = 5

		case 5: // frames - 2, animated streams only
			if !d.animated {
				d.frames = 1
				d.hSeg = 6
				continue
			}
			if d.vr == nil {
				d.vr = &varintReader{}
			}
			v, err := d.vr.step(d.src)
			if err != nil {
				return false, err
			}
			d.frames = int(v) + 2
			d.vr = nil
			d.hSeg = 6

		case 6: // metadata chunk loop
			done, err := d.parseMetadataStep()
			if err != nil {
				return false, err
			}
			if !done {
				return false, nil
			}
			return true, nil
		}
	}
}

// parseMetadataStep consumes one step of the metadata-chunk loop: either
// the zero-byte sentinel (done) or one full chunk (tag + size + payload,
// skipped raw — decompression is outside the core per spec §1).
func (d *Decoder) parseMetadataStep() (bool, error) {
	for {
		switch d.metaSeg {
		case 0:
			b, ok := d.src.GetByte()
			if !ok {
				return false, ErrNeedMoreData
			}
			if b == 0 {
				return true, nil
			}
			d.metaTag[0] = b
			d.metaTagIdx = 1
			d.metaSeg = 1

		case 1:
			for d.metaTagIdx < 4 {
				b, ok := d.src.GetByte()
				if !ok {
					return false, ErrNeedMoreData
				}
				d.metaTag[d.metaTagIdx] = b
				d.metaTagIdx++
			}
			d.metaSeg = 2

		case 2:
			if d.metaSizeReader == nil {
				d.metaSizeReader = &varintReader{}
			}
			v, err := d.metaSizeReader.step(d.src)
			if err != nil {
				return false, err
			}
			d.metaSizeReader = nil
			d.metaRemaining = v
			d.metaSeg = 3

		case 3:
			for d.metaRemaining > 0 {
				if _, ok := d.src.GetByte(); !ok {
					return false, ErrNeedMoreData
				}
				d.metaRemaining--
			}
			d.metaSeg = 0
			d.metaTagIdx = 0
		}
	}
}
