package flif16

import (
	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/maniac"
	"github.com/cocosip/go-flif16/flif16/pixel"
	"github.com/cocosip/go-flif16/flif16/rac"
	"github.com/cocosip/go-flif16/flif16/scanline"
	"github.com/cocosip/go-flif16/flif16/transform"
)

// planeOrder mirrors scanline's alpha-before-color decode order, used for
// both the MANIAC forest (one tree per non-constant plane) and the pixel
// decode itself.
var planeOrder = [...]int{3, 0, 1, 2}

// Decoder drives the full FLIF16 state machine (spec §4.9):
// HEADER → SECONDHEADER → TRANSFORMS → MANIAC → PIXELDATA → CHECKSUM.
// Every field below is resume state for exactly one of those states;
// Step may be called repeatedly as bytes are appended to src.
type Decoder struct {
	src *bytesource.Source
	rac *rac.Decoder
	ct  *rac.ChanceTable

	stage int // 0 HEADER, 1 SECONDHEADER, 2 TRANSFORMS, 3 MANIAC, 4 PIXELDATA, 5 INVERSE, 6 CHECKSUM, 7 done

	// HEADER
	hSeg           int
	magicIdx       int
	animated       bool
	channels       int
	bpcMarker      byte
	vr             *varintReader
	width, height  int
	frames         int
	metaSeg        int
	metaTag        [4]byte
	metaTagIdx     int
	metaSizeReader *varintReader
	metaRemaining  int64

	// SECONDHEADER
	shSeg           int
	channelIdx      int
	bpcUniform      *rac.Uniform
	bpcPerChannel   []int32
	bpc             int32
	alphazeroRead   *rac.Uniform
	alphazero       bool
	loopsRead       *rac.Uniform
	loops           int32
	delayIdx        int
	delayRead       *rac.Uniform
	delays          []int32
	customAlphaRead *rac.Uniform
	customAlpha     bool
	cutRead         *rac.Uniform
	cut             int
	alphaDivRead    *rac.Uniform
	alphaDiv        uint32
	custombcRead    *rac.Uniform

	// TRANSFORMS
	tSeg                int // 0 = run pipeline, 1 = maybe read invisible-pixel predictor
	pipeline            *transform.Pipeline
	invisiblePredRead   *rac.Uniform
	invisiblePredictor  int32

	// MANIAC
	maniacIdx                               int // index into planeOrder
	treeReader                              *maniac.Reader
	treePropCtx, treeCountCtx, treeSplitCtx *rac.ChanceContext
	trees                                    []*maniac.Tree // indexed by plane number

	// PIXELDATA
	buf  *pixel.Buffer
	scan *scanline.Decoder

	// CHECKSUM
	checksum    [4]byte
	checksumLen int

	Result *pixel.Buffer
}

// NewDecoder creates a Decoder reading from src. Bytes may be appended to
// src between Step calls as they arrive.
func NewDecoder(src *bytesource.Source) *Decoder {
	return &Decoder{src: src, rac: rac.New(src)}
}

// Step advances the decode as far as currently-buffered bytes allow. It
// returns (nil, ErrNeedMoreData) while suspended mid-stream, (nil, err)
// for any other error, and (buf, ErrEndOfStream) once the image is fully
// decoded — ErrEndOfStream is this decoder's terminal success signal,
// since checksum verification itself is out of scope (spec Design Note d).
func (d *Decoder) Step() (*pixel.Buffer, error) {
	for {
		switch d.stage {
		case 0:
			done, err := d.parseHeader()
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, ErrNeedMoreData
			}
			d.stage = 1

		case 1:
			if d.ct == nil {
				// The RAC prelude runs once; d.ct is only set after it
				// completes, so a re-entry after a second-header
				// suspension does not restart it.
				if err := d.rac.Init(); err != nil {
					return nil, err
				}
				d.ct = rac.NewChanceTable(rac.DefaultAlpha, rac.DefaultCut)
			}
			done, err := d.parseSecondHeader()
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, ErrNeedMoreData
			}
			if d.customAlpha {
				d.ct = rac.NewChanceTable(uint32(d.alphaDiv), d.cut)
			}
			d.stage = 2

		case 2:
			done, err := d.stepTransforms()
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, ErrNeedMoreData
			}
			d.stage = 3

		case 3:
			done, err := d.stepManiac()
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, ErrNeedMoreData
			}
			d.stage = 4

		case 4:
			done, err := d.stepPixelData()
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, ErrNeedMoreData
			}
			d.stage = 5

		case 5:
			d.applyInverse()
			d.Result = d.buf
			d.stage = 6

		case 6:
			for d.checksumLen < 4 {
				b, ok := d.src.GetByte()
				if !ok {
					return nil, ErrNeedMoreData
				}
				d.checksum[d.checksumLen] = b
				d.checksumLen++
			}
			d.stage = 7

		case 7:
			return d.Result, ErrEndOfStream
		}
	}
}

// initialRange builds the pre-transform per-plane range from the header
// fields: [0, bpc] for every declared channel.
func (d *Decoder) initialRange() *colorrange.Range {
	lo := make([]int32, d.channels)
	hi := make([]int32, d.channels)
	for p := 0; p < d.channels; p++ {
		hi[p] = d.bpc
	}
	return colorrange.NewStatic(lo, hi)
}

func (d *Decoder) stepTransforms() (bool, error) {
	for {
		switch d.tSeg {
		case 0:
			if d.pipeline == nil {
				d.pipeline = transform.NewPipeline(d.initialRange())
			}
			done, err := d.pipeline.Step(d.rac, d.ct)
			if err != nil {
				return false, err
			}
			if !done {
				return false, nil
			}
			d.tSeg = 1

		case 1:
			finalRange := d.pipeline.FinalRange()
			if d.alphazero && d.channels > 3 && finalRange.Min(3) <= 0 {
				if d.invisiblePredRead == nil {
					d.invisiblePredRead = rac.NewUniform(0, 2)
				}
				v, err := d.invisiblePredRead.Step(d.rac)
				if err != nil {
					return false, err
				}
				d.invisiblePredictor = int32(v)
			}
			return true, nil
		}
	}
}

func (d *Decoder) stepManiac() (bool, error) {
	finalRange := d.pipeline.FinalRange()
	if d.trees == nil {
		d.trees = make([]*maniac.Tree, d.channels)
	}
	hasAlpha := d.channels > 3

	for d.maniacIdx < len(planeOrder) {
		p := planeOrder[d.maniacIdx]
		if p >= d.channels || finalRange.Min(p) == finalRange.Max(p) {
			d.maniacIdx++
			continue
		}
		if d.treeReader == nil {
			ranges := scanline.PropertyRanges(finalRange, p, hasAlpha)
			d.treeReader = maniac.NewReader(ranges)
			d.treePropCtx = rac.NewChanceContext()
			d.treeCountCtx = rac.NewChanceContext()
			d.treeSplitCtx = rac.NewChanceContext()
		}
		tree, err := d.treeReader.Step(d.rac, d.ct, d.treePropCtx, d.treeCountCtx, d.treeSplitCtx)
		if err != nil {
			return false, err
		}
		d.trees[p] = tree
		d.treeReader = nil
		d.treePropCtx, d.treeCountCtx, d.treeSplitCtx = nil, nil, nil
		d.maniacIdx++
	}
	return true, nil
}

func (d *Decoder) stepPixelData() (bool, error) {
	finalRange := d.pipeline.FinalRange()
	if d.buf == nil {
		d.buf = pixel.NewBuffer(d.width, d.height, d.channels)
		for i := 0; i < d.frames; i++ {
			frame := pixel.NewFrame(d.channels, d.width, d.height)
			if i < len(d.delays) {
				frame.DelayMS = d.delays[i]
			}
			for p := 0; p < d.channels; p++ {
				if finalRange.Min(p) == finalRange.Max(p) {
					frame.Planes[p] = pixel.NewConstantPlane(d.width, d.height, finalRange.Min(p))
				}
			}
			d.buf.Frames = append(d.buf.Frames, frame)
		}
		d.scan = scanline.NewDecoder(d.buf, finalRange, d.trees, d.ct, d.alphazero)
		d.scan.SetInvisiblePredictor(d.invisiblePredictor)
	}
	return d.scan.Step(d.rac)
}

// applyInverse maps every decoded pixel back through the transform
// pipeline's inverse, from the post-transform coding space into the
// original per-channel pixel space (spec §4.5).
func (d *Decoder) applyInverse() {
	if len(d.pipeline.Transforms()) == 0 {
		return
	}
	vals := make([]int32, d.channels)
	for _, frame := range d.buf.Frames {
		for r := 0; r < d.height; r++ {
			for c := 0; c < d.width; c++ {
				for p := 0; p < d.channels; p++ {
					vals[p] = frame.Planes[p].Get(r, c)
				}
				out := d.pipeline.Forward(vals)
				for p := 0; p < d.channels; p++ {
					frame.Planes[p].Set(r, c, out[p])
				}
			}
		}
	}
}
