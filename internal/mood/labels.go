package mood

import "strings"

// Emotion is the coarse mood category assigned to a message. The set is
// closed: every classification result is one of these nine values.
type Emotion string

const (
	Normal  Emotion = "normal"
	Happy   Emotion = "happy"
	Sad     Emotion = "sad"
	Angry   Emotion = "angry"
	Anxious Emotion = "anxious"
	Excited Emotion = "excited"
	Upset   Emotion = "upset"
	Calm    Emotion = "calm"
	Cool    Emotion = "cool"
)

// Emotions lists all members of the closed emotion set.
func Emotions() []Emotion {
	return []Emotion{Normal, Happy, Sad, Angry, Anxious, Excited, Upset, Calm, Cool}
}

// String returns the string representation of the emotion.
func (e Emotion) String() string {
	return string(e)
}

// Emoji returns the display emoji for the emotion. Unknown values map to the
// neutral smiley so the renderer never shows a blank mood slot.
func (e Emotion) Emoji() string {
	if emoji, ok := moodEmojis[e]; ok {
		return emoji
	}
	return "😊"
}

var moodEmojis = map[Emotion]string{
	Normal:  "😊",
	Happy:   "😄",
	Sad:     "😢",
	Angry:   "😠",
	Calm:    "😌",
	Upset:   "😟",
	Cool:    "😎",
	Anxious: "😰",
	Excited: "🤩",
}

// nativeMapping translates the scorer's native label vocabulary onto the
// fixed emotion set. The scorer emits Ekman-style categories.
var nativeMapping = map[string]Emotion{
	"joy":      Happy,
	"sadness":  Sad,
	"anger":    Angry,
	"fear":     Anxious,
	"surprise": Excited,
	"disgust":  Upset,
	"neutral":  Normal,
}

// NativeLabels lists the label vocabulary a scorer is expected to emit, in a
// stable order suitable for embedding in prompts.
func NativeLabels() []string {
	return []string{"joy", "sadness", "anger", "fear", "surprise", "disgust", "neutral"}
}

// MapNative converts a native scorer label to an Emotion. The mapping is
// total: any label outside the known vocabulary maps to Normal.
func MapNative(label string) Emotion {
	if e, ok := nativeMapping[strings.ToLower(strings.TrimSpace(label))]; ok {
		return e
	}
	return Normal
}

// ParseEmotion normalises a stored string into a member of the closed set,
// falling back to Normal for anything unrecognised.
func ParseEmotion(v string) Emotion {
	switch Emotion(strings.ToLower(strings.TrimSpace(v))) {
	case Happy:
		return Happy
	case Sad:
		return Sad
	case Angry:
		return Angry
	case Anxious:
		return Anxious
	case Excited:
		return Excited
	case Upset:
		return Upset
	case Calm:
		return Calm
	case Cool:
		return Cool
	default:
		return Normal
	}
}
