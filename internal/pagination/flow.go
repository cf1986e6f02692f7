package pagination

// FlowItem is a placement belonging to one of several flowed sources.
type FlowItem struct {
	Source int
	Placement
}

// Flow stacks sources top to bottom, spacingMM apart, starting a new page
// whenever the next source does not fit. A source taller than the printable
// height starts on a fresh page and is banded like Plan.
func (e Engine) Flow(srcs []Source, spacingMM float64) ([]FlowItem, error) {
	var items []FlowItem
	c := e.ContentHeight()
	bottom := e.Format.HeightMM - e.MarginMM
	page, y := 1, e.MarginMM

	for i, src := range srcs {
		plan, err := e.Plan(src)
		if err != nil {
			return nil, err
		}

		if plan.ImageHeightMM <= c {
			if y > e.MarginMM && y+plan.ImageHeightMM > bottom {
				page++
				y = e.MarginMM
			}
			pl := plan.Placements[0]
			pl.Page = page
			pl.Y = y
			items = append(items, FlowItem{Source: i, Placement: pl})
			y += plan.ImageHeightMM + spacingMM
			continue
		}

		if y > e.MarginMM {
			page++
		}
		for _, pl := range plan.Placements {
			pl.Page += page - 1
			items = append(items, FlowItem{Source: i, Placement: pl})
		}
		last := plan.Placements[len(plan.Placements)-1]
		page = last.Page + page - 1
		y = e.MarginMM + last.Height + spacingMM
	}
	return items, nil
}
