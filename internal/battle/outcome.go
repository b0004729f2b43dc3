package battle

// Reward rates per enemy in the original roster.
const (
	ExperiencePerEnemy = 50
	GoldPerEnemy       = 25
)

// Result is how a battle ended.
type Result int

const (
	ResultVictory Result = iota
	ResultDefeat
	ResultEscaped
)

// String returns a human-readable result.
func (r Result) String() string {
	switch r {
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	case ResultEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Rewards are granted on victory only.
type Rewards struct {
	Experience int      `json:"experience"`
	Gold       int      `json:"gold"`
	Items      []string `json:"items,omitempty"`
}

// Outcome is the terminal value of a battle.
type Outcome struct {
	Result  Result
	Rewards Rewards
	Turns   int // Actions resolved on both sides
	Rounds  int // Player phases entered
}

// clone returns a copy that shares no slices with o.
func (o Outcome) clone() Outcome {
	o.Rewards.Items = append([]string(nil), o.Rewards.Items...)
	return o
}

// CalculateRewards computes victory rewards from the size of the original
// enemy roster. drops is copied into the result unchanged.
func CalculateRewards(enemyCount int, drops []string) Rewards {
	if enemyCount < 0 {
		enemyCount = 0
	}
	return Rewards{
		Experience: enemyCount * ExperiencePerEnemy,
		Gold:       enemyCount * GoldPerEnemy,
		Items:      append([]string(nil), drops...),
	}
}
