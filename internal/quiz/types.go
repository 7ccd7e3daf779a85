package quiz

// PlaceRecord is one quiz item. Records are supplied by the dataset loader
// and never modified.
type PlaceRecord struct {
	Placename  string `json:"Placename" validate:"required"`
	Meaning    string `json:"Meaning" validate:"required"`
	Components string `json:"Components,omitempty"`
}

// FeedbackState is the evaluation state of the current question.
type FeedbackState string

const (
	FeedbackNone              FeedbackState = "none"
	FeedbackCorrect           FeedbackState = "correct"
	FeedbackIncorrectRetry    FeedbackState = "incorrect_retry"
	FeedbackIncorrectRevealed FeedbackState = "incorrect_revealed"
)

// Terminal reports whether no further guesses are accepted.
func (f FeedbackState) Terminal() bool {
	return f == FeedbackCorrect || f == FeedbackIncorrectRevealed
}

// QuestionState is the mutable state of the question being played. It is
// reset in full whenever a new question is selected.
type QuestionState struct {
	CurrentPlace     *PlaceRecord  `json:"currentPlace"`
	UserGuess        string        `json:"userGuess"`
	AttemptCount     int           `json:"attemptCount"` // 0 or 1
	IncorrectGuesses []string      `json:"incorrectGuesses"`
	Feedback         FeedbackState `json:"feedback"`
	HintVisible      bool          `json:"hintVisible"`
	ShowLink         bool          `json:"showLink"`
}

// HistoryEntry records a finished question.
type HistoryEntry struct {
	Meaning          string   `json:"meaning"`
	Placename        string   `json:"placename"`
	UserAnswer       string   `json:"userAnswer"`
	Correct          bool     `json:"correct"`
	IncorrectGuesses []string `json:"incorrectGuesses"`
}

// Snapshot is a read-only copy of everything the page needs to render.
type Snapshot struct {
	Question        QuestionState  `json:"question"`
	Answered        bool           `json:"answered"`
	FeedbackMessage string         `json:"feedbackMessage"`
	HintText        string         `json:"hintText"`
	Links           *Links         `json:"links,omitempty"`
	Choices         []string       `json:"choices"`
	History         []HistoryEntry `json:"history"`
	HistoryVisible  bool           `json:"historyVisible"`
}
