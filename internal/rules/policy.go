package rules

// Policy holds the tunable constants of the rules.
type Policy struct {
	// PassingGrade is the lowest passing grade (inclusive).
	PassingGrade float64

	// ParticipationBonus is added to the base grade for participants.
	ParticipationBonus float64

	// Password is the expected login credential.
	Password string
}

// DefaultPolicy returns the stock constants.
func DefaultPolicy() Policy {
	return Policy{
		PassingGrade:       75,
		ParticipationBonus: 5.0,
		Password:           "admin123",
	}
}
