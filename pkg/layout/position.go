package layout

import (
	"cmp"
	"math"
	"slices"
)

// Position refines ranked placements so that couples share a level and
// their shared children are centred beneath them. It returns a new slice in
// the order of ranked; the input is not modified.
//
// People are visited generation by generation, in input order within a
// generation. A visit does one of the following:
//
//   - The person and their partner are paired. If neither has been placed
//     yet the pair takes the higher of their two levels and is centred on the
//     midpoint of their ranked X. If one of them was already placed as
//     someone's child, that one stays and the other moves beside them. The
//     first visited stands on the left, NodeWidth+SpouseGap apart. Unplaced
//     shared children form one row under the couple's centre.
//   - A person without a partner to pair with keeps their position and their
//     unplaced children are centred under them.
//
// Each person is paired or has children centred at most once. A final sweep
// pushes boxes apart where levels overlap (couples move as one unit and
// drag the children centred beneath them along) and translates the drawing
// to the margin.
func Position(ranked []Placement, idx *Index, opts Options) []Placement {
	p := &positioner{
		opts:     opts,
		idx:      idx,
		out:      slices.Clone(ranked),
		at:       make(map[int64]int, len(ranked)),
		placed:   make(map[int64]bool, len(ranked)),
		expanded: make(map[int64]bool, len(ranked)),
		couple:   make(map[int64][2]int64),
		follows:  make(map[int64][]int64),
	}
	for i, pl := range p.out {
		p.at[pl.PersonID] = i
	}

	visit := make([]int, len(p.out))
	for i := range visit {
		visit[i] = i
	}
	slices.SortStableFunc(visit, func(a, b int) int {
		return cmp.Compare(p.out[a].Rank, p.out[b].Rank)
	})

	for _, i := range visit {
		id := p.out[i].PersonID
		if p.expanded[id] {
			continue
		}
		if partner, ok := idx.Partner(id); ok && p.present(partner) && !p.expanded[partner] {
			p.pair(id, partner)
			continue
		}
		p.placed[id] = true
		p.expanded[id] = true
		p.centreChildren(id, idx.ChildrenOf(id), p.out[i].X)
	}

	p.sweep()
	p.translate()
	return p.out
}

type positioner struct {
	opts Options
	idx  *Index
	out  []Placement
	at   map[int64]int

	placed   map[int64]bool // position fixed
	expanded map[int64]bool // paired or had children centred

	couple  map[int64][2]int64 // member → {left, right}
	follows map[int64][]int64  // owner → children centred beneath
}

func (p *positioner) present(id int64) bool {
	_, ok := p.at[id]
	return ok
}

func (p *positioner) get(id int64) *Placement { return &p.out[p.at[id]] }

func (p *positioner) pair(left, right int64) {
	l, r := p.get(left), p.get(right)
	step := p.opts.spouseStep()

	switch {
	case p.placed[left]:
		r.X, r.Y = l.X+step, l.Y
	case p.placed[right]:
		l.X, l.Y = r.X-step, r.Y
	default:
		centre := (l.X + r.X) / 2
		y := math.Min(l.Y, r.Y)
		l.X, l.Y = centre-step/2, y
		r.X, r.Y = centre+step/2, y
	}

	for _, id := range []int64{left, right} {
		p.placed[id] = true
		p.expanded[id] = true
		p.couple[id] = [2]int64{left, right}
	}
	p.centreChildren(left, p.idx.SharedChildren(left, right), (l.X+r.X)/2)
}

// centreChildren lays out the unplaced children among ids in one row centred
// on centre, keeping their ranked left-to-right order.
func (p *positioner) centreChildren(owner int64, ids []int64, centre float64) {
	var kids []int64
	for _, id := range ids {
		if p.present(id) && !p.placed[id] {
			kids = append(kids, id)
		}
	}
	if len(kids) == 0 {
		return
	}
	slices.SortStableFunc(kids, func(a, b int64) int {
		if c := cmp.Compare(p.get(a).X, p.get(b).X); c != 0 {
			return c
		}
		return cmp.Compare(p.at[a], p.at[b])
	})

	y := math.Inf(-1)
	for _, id := range kids {
		y = math.Max(y, p.get(id).Y)
	}
	step := p.opts.siblingStep()
	half := float64(len(kids)-1) / 2
	for j, id := range kids {
		k := p.get(id)
		k.X = centre + (float64(j)-half)*step
		k.Y = y
		p.placed[id] = true
	}
	p.follows[owner] = append(p.follows[owner], kids...)
}

// unit is a run of boxes on one level that moves as a whole during the
// sweep: a couple or a single person.
type unit struct {
	ids   []int64
	first int // smallest input index, for tie-breaks
}

func (p *positioner) sweep() {
	levels := make(map[float64][]int64)
	for _, pl := range p.out {
		levels[pl.Y] = append(levels[pl.Y], pl.PersonID)
	}
	ys := make([]float64, 0, len(levels))
	for y := range levels {
		ys = append(ys, y)
	}
	slices.Sort(ys)

	inherited := make(map[int64]float64)
	step := p.opts.siblingStep()

	for _, y := range ys {
		units := p.units(levels[y])
		moved := make(map[int64]float64)

		for _, u := range units {
			for _, id := range u.ids {
				if s, ok := inherited[id]; ok {
					p.shift(u, s, moved)
					break
				}
			}
		}

		slices.SortFunc(units, func(a, b unit) int {
			if c := cmp.Compare(p.minX(a), p.minX(b)); c != 0 {
				return c
			}
			return cmp.Compare(a.first, b.first)
		})
		for i := 1; i < len(units); i++ {
			if push := p.maxX(units[i-1]) + step - p.minX(units[i]); push > 0 {
				p.shift(units[i], push, moved)
			}
		}

		for _, id := range levels[y] {
			s, ok := moved[id]
			if !ok {
				continue
			}
			for _, child := range p.follows[id] {
				if _, set := inherited[child]; !set {
					inherited[child] = s
				}
			}
		}
	}
}

func (p *positioner) units(ids []int64) []unit {
	level := make(map[int64]bool, len(ids))
	for _, id := range ids {
		level[id] = true
	}
	seen := make(map[int64]bool, len(ids))
	var units []unit
	for _, id := range ids {
		if seen[id] {
			continue
		}
		members := []int64{id}
		if c, ok := p.couple[id]; ok && level[c[0]] && level[c[1]] {
			members = c[:]
		}
		u := unit{ids: members, first: len(p.out)}
		for _, m := range members {
			seen[m] = true
			u.first = min(u.first, p.at[m])
		}
		units = append(units, u)
	}
	return units
}

func (p *positioner) shift(u unit, dx float64, moved map[int64]float64) {
	if dx == 0 {
		return
	}
	for _, id := range u.ids {
		p.get(id).X += dx
		moved[id] += dx
	}
}

func (p *positioner) minX(u unit) float64 {
	x := math.Inf(1)
	for _, id := range u.ids {
		x = math.Min(x, p.get(id).X)
	}
	return x
}

func (p *positioner) maxX(u unit) float64 {
	x := math.Inf(-1)
	for _, id := range u.ids {
		x = math.Max(x, p.get(id).X)
	}
	return x
}

// translate moves the drawing so its left and top box edges sit at the
// margin.
func (p *positioner) translate() {
	if len(p.out) == 0 {
		return
	}
	left, top := math.Inf(1), math.Inf(1)
	for _, pl := range p.out {
		left = math.Min(left, pl.X)
		top = math.Min(top, pl.Y)
	}
	dx := p.opts.Margin + p.opts.NodeWidth/2 - left
	dy := p.opts.Margin + p.opts.NodeHeight/2 - top
	for i := range p.out {
		p.out[i].X += dx
		p.out[i].Y += dy
	}
}
