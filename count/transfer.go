// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

// TransferValue returns surplus / total truncated to six decimal places.
func TransferValue(surplus, total Value) (Value, error) {
	if surplus <= 0 {
		return 0, nil
	}
	return ratioTrunc(surplus, total)
}

// distributeSurplus passes every parcel an elected candidate holds to the
// next hopeful preference on each ballot, all at the one transfer value
// (weighted inclusive Gregory). A candidate exactly on quota keeps its
// parcels and nothing moves.
func (c *count) distributeSurplus(slot, round int) (*Surplus, []Transfer, error) {
	total := c.totals[slot]
	surplus := total - c.quota
	if surplus <= 0 {
		return nil, nil, nil
	}

	tv, err := TransferValue(surplus, total)
	if err != nil {
		return nil, nil, err
	}

	res, err := c.hold.move(slot, round, c.hopefulMask(), func(p *Parcel) (Value, error) {
		return mulTrunc(p.Value, tv)
	})
	if err != nil {
		return nil, nil, err
	}

	s := &Surplus{
		Candidate:      c.roster.id(slot),
		Total:          total,
		Surplus:        surplus,
		TransferValue:  tv,
		Moved:          res.moved,
		LostByFraction: surplus - res.moved,
	}
	if err := c.addExhausted(res); err != nil {
		return nil, nil, err
	}
	if c.lost, err = addValues(c.lost, s.LostByFraction); err != nil {
		return nil, nil, err
	}
	c.totals[slot] = c.quota
	return s, res.transfers, nil
}

// excludeAndTransfer passes on every parcel of an excluded candidate at the
// value each parcel already carries.
func (c *count) excludeAndTransfer(slot, round int) ([]Transfer, error) {
	res, err := c.hold.move(slot, round, c.hopefulMask(), func(p *Parcel) (Value, error) {
		return p.Value, nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.addExhausted(res); err != nil {
		return nil, err
	}
	c.totals[slot] = 0
	return res.transfers, nil
}

func (c *count) addExhausted(res moveResult) error {
	var err error
	if c.exhausted, err = addValues(c.exhausted, res.exhausted); err != nil {
		return err
	}
	c.exhaustedPapers += res.exhaustedPapers
	return nil
}
