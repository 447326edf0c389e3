package game

// Playable is any effect that can mutate a match context when played.
// Play cannot fail and there is no rollback; effects either apply in
// full or are never invoked.
type Playable interface {
	Play(ctx *Context)
}

// AttackEffect deals a fixed amount of damage to the enemy.
type AttackEffect struct {
	Damage int
}

func (e AttackEffect) Play(ctx *Context) {
	ctx.DealDamage(e.Damage)
}

// HealEffect restores a fixed amount of player health.
type HealEffect struct {
	Amount int
}

func (e HealEffect) Play(ctx *Context) {
	ctx.Heal(e.Amount)
}

// CompoundEffect applies its sub-effects strictly in order against the
// same context, so later effects see earlier mutations.
type CompoundEffect struct {
	Effects []Playable
}

func (e CompoundEffect) Play(ctx *Context) {
	for _, effect := range e.Effects {
		effect.Play(ctx)
	}
}
