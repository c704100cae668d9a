package outline

// Convert runs the full pipeline -- decompose, fix thin lines, make
// cells -- over w and returns the resulting Outline. A Walker error is
// a fatal abort of the conversion; a grid that can't be fit is instead
// reported out-of-band as a zero CellCountX/CellCountY (see MakeCells).
func Convert(w Walker) (*Outline, error) {
	o, err := Decompose(w)
	if err != nil {
		return nil, err
	}
	FixThinLines(o)
	MakeCells(o)
	return o, nil
}
