package scenario

// DefaultKey names the entry used for absent or unrecognised scenarios.
const DefaultKey = "general"

// Scenario is a named context that steers the generated reply.
type Scenario struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// Seed provides the built-in scenarios, general last.
func Seed() []Scenario {
	return []Scenario{
		{Key: "morning", Description: "getting ready for the day"},
		{Key: "bedtime", Description: "preparing for bed"},
		{Key: "homework", Description: "doing homework"},
		{Key: "meals", Description: "eating meals"},
		{Key: "chores", Description: "doing chores"},
		{Key: DefaultKey, Description: "general encouragement"},
	}
}
