package content

import (
	"os"
	"strconv"
)

// Balance holds the match-tuning numbers.
type Balance struct {
	PlayerHealth int `yaml:"player_health" json:"player_health"`
	EnemyHealth  int `yaml:"enemy_health" json:"enemy_health"`
	MaxEnergy    int `yaml:"max_energy" json:"max_energy"`
	HandSize     int `yaml:"hand_size" json:"hand_size"`
	EnemyAttack  int `yaml:"enemy_attack" json:"enemy_attack"`
}

// DefaultBalance returns the standard difficulty numbers.
func DefaultBalance() Balance {
	return Balance{
		PlayerHealth: 30,
		EnemyHealth:  30,
		MaxEnergy:    3,
		HandSize:     5,
		EnemyAttack:  5,
	}
}

// CasualBalance is more forgiving for new players.
func CasualBalance() Balance {
	b := DefaultBalance()
	b.PlayerHealth = 40
	b.EnemyHealth = 25
	b.EnemyAttack = 3
	return b
}

// HardBalance is tuned for experienced players.
func HardBalance() Balance {
	b := DefaultBalance()
	b.PlayerHealth = 25
	b.EnemyHealth = 40
	b.EnemyAttack = 7
	return b
}

// BalanceFromEnv applies environment overrides on top of the given
// balance. DIFFICULTY selects a preset wholesale; individual variables
// then override single fields.
func BalanceFromEnv(base Balance) Balance {
	cfg := base

	switch os.Getenv("DIFFICULTY") {
	case "casual":
		cfg = CasualBalance()
	case "hard":
		cfg = HardBalance()
	}

	if val := getEnvInt("PLAYER_HEALTH"); val > 0 {
		cfg.PlayerHealth = val
	}
	if val := getEnvInt("ENEMY_HEALTH"); val > 0 {
		cfg.EnemyHealth = val
	}
	if val := getEnvInt("MAX_ENERGY"); val > 0 {
		cfg.MaxEnergy = val
	}
	if val := getEnvInt("HAND_SIZE"); val > 0 {
		cfg.HandSize = val
	}
	if val := getEnvInt("ENEMY_ATTACK"); val >= 0 && os.Getenv("ENEMY_ATTACK") != "" {
		cfg.EnemyAttack = val
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
