package card

// ID identifies a card within a game's card pool. Uniqueness is the
// content layer's responsibility; this package does not enforce it.
type ID int

// Type is the category of a card.
type Type string

const (
	TypeAttack Type = "attack"
	TypeSkill  Type = "skill"
	TypePower  Type = "power"
)

// Card is an immutable playable unit. Cards are plain values: copying
// one produces an independent card with the same ID.
type Card struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Type        Type   `json:"type"`
}

// New creates a card. Cost is not validated; a negative cost is the
// caller's problem.
func New(id ID, name, description string, cost int, typ Type) Card {
	return Card{
		ID:          id,
		Name:        name,
		Description: description,
		Cost:        cost,
		Type:        typ,
	}
}
