package regulations

import "errors"

// PledgeCount is the number of checkboxes the rules gate requires.
const PledgeCount = 3

var ErrIncompleteChecklist = errors.New("all season pledges must be accepted")

type Rule struct {
	Title       string
	Description string
}

// Checklist is the state of the three pledge checkboxes.
type Checklist [PledgeCount]bool

// Complete is true only when every pledge is ticked.
func (c Checklist) Complete() bool {
	for _, v := range c {
		if !v {
			return false
		}
	}
	return true
}

// Toggle flips one pledge; out-of-range indexes are ignored.
func (c Checklist) Toggle(i int) Checklist {
	if i < 0 || i >= PledgeCount {
		return c
	}
	c[i] = !c[i]
	return c
}

// ChecklistFromSlice copies up to PledgeCount values.
func ChecklistFromSlice(values []bool) Checklist {
	var c Checklist
	copy(c[:], values)
	return c
}

func Rules() []Rule {
	return []Rule{
		{
			Title:       "The Golden Boot",
			Description: "Speed is everything. The first to submit a solution earns 100 bonus points. Every second counts in the technical area.",
		},
		{
			Title:       "Tactical Difficulty",
			Description: "Fixtures are rated 1-5 stars. Harder matches yield higher base points. Don't shy away from the 'Heavyweight' assignments.",
		},
		{
			Title:       "Injury Time & VAR",
			Description: "Late submissions incur a 50% point penalty. Missed deadlines result in a Red Card, potentially banning you from next week's points.",
		},
	}
}

func Pledges() [PledgeCount]string {
	return [PledgeCount]string{
		"I accept the Gaffer's authority in all league decisions.",
		"I commit to the fair play guidelines and academic integrity.",
		"I acknowledge that points are final and VAR is absolute.",
	}
}

func Punishments() []string {
	return []string{
		"The Gaffer's Fine: You pay for the group's coffee tomorrow.",
		"Training Drills: Run 5 laps around the library.",
		"Kit Wash: You have to organize the next study session's snacks.",
		"Transfer List: You are muted in the league chat for 24 hours.",
		"Bench Warmers: You must sit in the front row of the next lecture.",
	}
}
