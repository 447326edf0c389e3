package game

// Context holds match-scoped numeric state. Health values are signed
// and unclamped: dropping below zero is how defeat is signalled.
// Energy is the per-turn budget and never goes negative.
type Context struct {
	PlayerHealth int `json:"player_health"`
	EnemyHealth  int `json:"enemy_health"`
	Energy       int `json:"energy"`
	Turn         int `json:"turn"`
}

// NewContext creates a context for one match. Energy starts at 0 and
// the turn counter at 1; the host grants energy via NewTurn.
func NewContext(playerHealth, enemyHealth int) *Context {
	return &Context{
		PlayerHealth: playerHealth,
		EnemyHealth:  enemyHealth,
		Energy:       0,
		Turn:         1,
	}
}

// DealDamage reduces enemy health by amount. No clamping: a negative
// amount heals the enemy, which is the caller's call.
func (c *Context) DealDamage(amount int) {
	c.EnemyHealth -= amount
}

// Heal raises player health by amount. No clamping.
func (c *Context) Heal(amount int) {
	c.PlayerHealth += amount
}

// SpendEnergy subtracts amount if the budget covers it and reports
// whether it did. On refusal the context is untouched. This is the
// only guarded mutation; everything else applies unconditionally.
func (c *Context) SpendEnergy(amount int) bool {
	if c.Energy < amount {
		return false
	}
	c.Energy -= amount
	return true
}

// IsGameOver reports whether either side is at or below zero health.
func (c *Context) IsGameOver() bool {
	return c.PlayerHealth <= 0 || c.EnemyHealth <= 0
}

// NewTurn advances the turn counter and resets energy to maxEnergy.
// Unspent energy does not carry over.
func (c *Context) NewTurn(maxEnergy int) {
	c.Turn++
	c.Energy = maxEnergy
}
