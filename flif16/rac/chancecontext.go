package rac

// Chance context slot layout: 54 named slots, exactly as
// flif16_nz_int_chances / NZ_INT_* in the reference decoder.
const (
	slotZero = 0
	slotSign = 1
	numSlots = 54

	numExp  = 34 // k in [0,33]
	numMant = 18 // k in [0,17]
)

func slotExp(k int) int  { return 2 + k }
func slotMant(k int) int { return 36 + k }

// defaultNZChances is the initial value of every chance slot, parts per
// 4096, exactly as the reference decoder's flif16_nz_int_chances table.
var defaultNZChances = [numSlots]uint16{
	1000, // ZERO
	2048, // SIGN
	// Exponents, two entries per exponent value (positive/negative sign).
	1000, 1000,
	1200, 1200,
	1500, 1500,
	1750, 1750,
	2000, 2000,
	2300, 2300,
	2800, 2800,
	2400, 2400,
	2300, 2300,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	2048, 2048,
	// Mantissa.
	1900,
	1850,
	1800,
	1750,
	1650,
	1600,
	1600,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
	2048,
}

// ChanceContext is a bank of 54 adaptive chances — one coder/tree/leaf's
// probability model. Every entry stays strictly inside (0, 4096) as the
// table is adapted.
type ChanceContext struct {
	chances [numSlots]uint16
}

// NewChanceContext returns a context initialized to the reference
// decoder's defaults.
func NewChanceContext() *ChanceContext {
	c := &ChanceContext{}
	copy(c.chances[:], defaultNZChances[:])
	return c
}

// Clone duplicates a context — used by the MANIAC leaf arena when a node's
// chance context must be split between two children.
func (c *ChanceContext) Clone() *ChanceContext {
	cp := &ChanceContext{}
	copy(cp.chances[:], c.chances[:])
	return cp
}

// readSymbol decodes one bit at the given slot against t, then adapts the
// context in place (ff_flif16_rac_read_symbol + ff_flif16_chancetable_put).
func (c *ChanceContext) readSymbol(d *Decoder, t *ChanceTable, slot int) (int, error) {
	bit, err := d.ReadWithChance(c.chances[slot])
	if err != nil {
		return 0, err
	}
	c.chances[slot] = t.Put(c.chances[slot], bit)
	return bit, nil
}
