package game

import "math"

// BambooClock is the shared food stock. Hungry pandas eat from it every
// tick and a fixed ration is delivered on a fixed interval; both accumulate
// independently.
type BambooClock struct {
	Stock             float64
	HungerRate        float64 // Per hungry panda per second
	ReplenishAmount   float64
	ReplenishInterval float64 // Seconds

	sinceReplenish float64
}

// NewBambooClock builds the clock from the session config.
func NewBambooClock(cfg GameConfig) BambooClock {
	return BambooClock{
		Stock:             cfg.InitialBamboo,
		HungerRate:        cfg.HungerRate,
		ReplenishAmount:   cfg.ReplenishAmount,
		ReplenishInterval: cfg.ReplenishInterval.Seconds(),
	}
}

// Update advances the clock by dt seconds with hungry pandas eating and
// reports whether the stock is exhausted. Rations due this tick arrive
// before the pandas eat. The stock never drops below zero.
func (b *BambooClock) Update(hungry int, dt float64) (exhausted bool) {
	if b.ReplenishInterval > 0 {
		b.sinceReplenish += dt
		if due := math.Floor(b.sinceReplenish / b.ReplenishInterval); due > 0 {
			b.sinceReplenish -= due * b.ReplenishInterval
			b.Stock += due * b.ReplenishAmount
		}
	}

	if b.Stock > 0 {
		b.Stock -= float64(hungry) * b.HungerRate * dt
		if b.Stock < 0 {
			b.Stock = 0
		}
	}
	return b.Stock <= 0
}

// updateBamboo feeds every Normal panda. Pandas that are held, flying, in
// love or dead do not eat.
func (e *Engine) updateBamboo(dt float64) bool {
	return e.State.Bamboo.Update(e.hungryCount(), dt)
}

func (e *Engine) hungryCount() int {
	n := 0
	for _, p := range e.State.Pandas {
		if p.State == PandaNormal {
			n++
		}
	}
	return n
}
