package crisis

import (
	"encoding/json"
	"os"

	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Contact is one entry in the resource directory.
type Contact struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description"`
}

// Category groups contacts under a display title.
type Category struct {
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
}

// Directory is the full crisis-resource data set, keyed by category. It is
// read-only reference content; the pipeline only triggers its display.
type Directory map[string]Category

// quickCategories are scanned, in order, by QuickContacts.
var quickCategories = []string{"emergency", "suicide_prevention"}

// LoadDirectory reads the directory from a JSON file. A missing or
// unparseable file falls back to the built-in default set: in this domain the
// resources must never be entirely absent, so load failure is a warning, not
// an error.
func LoadDirectory(path string) Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("crisis contacts file unavailable, using built-in defaults")
		return DefaultDirectory()
	}

	var dir Directory
	if err := json.Unmarshal(data, &dir); err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("crisis contacts file unparseable, using built-in defaults")
		return DefaultDirectory()
	}
	if len(dir) == 0 {
		return DefaultDirectory()
	}
	return dir
}

// QuickContacts returns a condensed list of the most important resources:
// the first two contacts from the emergency and suicide-prevention
// categories.
func (d Directory) QuickContacts() []Contact {
	var quick []Contact
	for _, key := range quickCategories {
		category, ok := d[key]
		if !ok {
			continue
		}
		contacts := category.Contacts
		if len(contacts) > 2 {
			contacts = contacts[:2]
		}
		quick = append(quick, contacts...)
	}
	return quick
}

// DefaultDirectory returns the built-in resource set.
func DefaultDirectory() Directory {
	return Directory{
		"emergency": {
			Title: "🚨 Emergency Services",
			Contacts: []Contact{
				{Name: "Emergency Services", Number: "911", Description: "Immediate emergency response"},
				{Name: "Crisis Text Line", Number: "Text HOME to 741741", Description: "24/7 crisis counseling via text"},
			},
		},
		"suicide_prevention": {
			Title: "🆘 Suicide Prevention",
			Contacts: []Contact{
				{Name: "988 Suicide & Crisis Lifeline", Number: "988", Description: "24/7 confidential support for people in distress"},
				{Name: "International Association for Suicide Prevention", Number: "Visit iasp.info/resources/Crisis_Centres/", Description: "Global crisis center directory"},
			},
		},
		"mental_health": {
			Title: "🧠 Mental Health Support",
			Contacts: []Contact{
				{Name: "NAMI Helpline", Number: "1-800-950-NAMI (6264)", Description: "National Alliance on Mental Illness support"},
				{Name: "SAMHSA National Helpline", Number: "1-800-662-4357", Description: "Mental health and substance abuse treatment referrals"},
			},
		},
		"student_resources": {
			Title: "🎓 Student Support",
			Contacts: []Contact{
				{Name: "Campus Counseling Center", Number: "Contact your institution", Description: "On-campus mental health services"},
				{Name: "Student Health Services", Number: "Available at most colleges", Description: "Medical and psychological support for students"},
			},
		},
		"online_resources": {
			Title: "💻 Online Support",
			Contacts: []Contact{
				{Name: "BetterHelp", Number: "betterhelp.com", Description: "Online counseling and therapy"},
				{Name: "7 Cups", Number: "7cups.com", Description: "Free emotional support and online therapy"},
				{Name: "MindfulnessApps", Number: "Headspace, Calm, Insight Timer", Description: "Meditation and mindfulness apps"},
			},
		},
	}
}
