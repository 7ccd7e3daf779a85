// Package quiz implements the place-name quiz: one question at a time, two
// attempts per question with a hint after the first miss, and a history of
// finished questions.
package quiz

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ErrInvalidInput is returned when no question can be selected because the
// dataset is empty or was never supplied.
var ErrInvalidInput = errors.New("quiz: dataset is empty")

const (
	MessageCorrect     = "✅ Correct!"
	MessageTryAgain    = "❌ Incorrect! Try again with the hint below."
	messageRevealedFmt = "❌ Incorrect! The correct answer is \"%s\"."
	hintFmt            = "The answer has %d letters and starts with '%s'"
)

// Chooser returns an index in [0, n). n is always positive.
type Chooser func(n int) int

// Option configures a Session.
type Option func(*Session)

// WithChooser replaces the random question picker.
func WithChooser(choose Chooser) Option {
	return func(s *Session) {
		if choose != nil {
			s.choose = choose
		}
	}
}

// Session owns the state of one player's quiz. It is not safe for
// concurrent use.
type Session struct {
	places         []PlaceRecord
	current        QuestionState
	history        []HistoryEntry
	historyVisible bool
	choose         Chooser
}

// New starts a session over places and selects the first question.
func New(places []PlaceRecord, opts ...Option) (*Session, error) {
	if len(places) == 0 {
		return nil, ErrInvalidInput
	}
	s := &Session{
		places:  slices.Clone(places),
		history: []HistoryEntry{},
		choose:  randomIndex,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.pickQuestion(); err != nil {
		return nil, err
	}
	return s, nil
}

// Select records the candidate currently chosen in the dropdown.
func (s *Session) Select(candidate string) {
	if s.current.Feedback.Terminal() {
		return
	}
	s.current.UserGuess = candidate
}

// SubmitGuess evaluates candidate against the current question. An empty
// candidate, a missing question or an already answered question leaves the
// state untouched.
func (s *Session) SubmitGuess(candidate string) {
	place := s.current.CurrentPlace
	if candidate == "" || place == nil || s.current.Feedback.Terminal() {
		return
	}
	s.current.UserGuess = candidate

	if candidate == place.Placename {
		s.current.Feedback = FeedbackCorrect
		s.current.HintVisible = false
		s.current.ShowLink = true
		return
	}

	s.current.IncorrectGuesses = append(s.current.IncorrectGuesses, candidate)
	if s.current.AttemptCount == 0 {
		s.current.AttemptCount = 1
		s.current.Feedback = FeedbackIncorrectRetry
		s.current.HintVisible = true
		return
	}
	s.current.Feedback = FeedbackIncorrectRevealed
	s.current.HintVisible = false
	s.current.ShowLink = true
}

// Advance archives the finished question, if any, and moves on to a new
// randomly selected one. Questions that were never answered are not
// archived. A question whose meaning and name already appear in the
// history is not archived again.
func (s *Session) Advance() error {
	if len(s.places) == 0 {
		return ErrInvalidInput
	}
	if place := s.current.CurrentPlace; place != nil && s.current.Feedback.Terminal() && !s.inHistory(place) {
		s.history = append(s.history, HistoryEntry{
			Meaning:          place.Meaning,
			Placename:        place.Placename,
			UserAnswer:       s.current.UserGuess,
			Correct:          s.current.UserGuess == place.Placename,
			IncorrectGuesses: slices.Clone(s.current.IncorrectGuesses),
		})
	}
	return s.pickQuestion()
}

// ToggleHistory flips whether the history panel is shown.
func (s *Session) ToggleHistory() {
	s.historyVisible = !s.historyVisible
}

func (s *Session) inHistory(place *PlaceRecord) bool {
	return lo.ContainsBy(s.history, func(h HistoryEntry) bool {
		return h.Meaning == place.Meaning && h.Placename == place.Placename
	})
}

func (s *Session) pickQuestion() error {
	if len(s.places) == 0 {
		return ErrInvalidInput
	}
	i := s.choose(len(s.places))
	if i < 0 || i >= len(s.places) {
		return fmt.Errorf("%w: chooser returned index %d of %d", ErrInvalidInput, i, len(s.places))
	}
	place := s.places[i]
	s.current = QuestionState{
		CurrentPlace:     &place,
		IncorrectGuesses: []string{},
		Feedback:         FeedbackNone,
	}
	return nil
}

// CurrentPlace returns the active question, or nil before one is selected.
func (s *Session) CurrentPlace() *PlaceRecord {
	if s.current.CurrentPlace == nil {
		return nil
	}
	p := *s.current.CurrentPlace
	return &p
}

func (s *Session) Feedback() FeedbackState { return s.current.Feedback }
func (s *Session) UserGuess() string { return s.current.UserGuess }
func (s *Session) AttemptCount() int { return s.current.AttemptCount }
func (s *Session) HintVisible() bool { return s.current.HintVisible }
func (s *Session) ShowLink() bool { return s.current.ShowLink }
func (s *Session) HistoryVisible() bool { return s.historyVisible }

// IsAnswered reports whether the current question reached a terminal state.
func (s *Session) IsAnswered() bool { return s.current.Feedback.Terminal() }

// IncorrectGuesses returns the wrong guesses for the current question.
func (s *Session) IncorrectGuesses() []string {
	return slices.Clone(s.current.IncorrectGuesses)
}

// History returns the finished questions in the order they were archived.
func (s *Session) History() []HistoryEntry {
	return lo.Map(s.history, func(h HistoryEntry, _ int) HistoryEntry {
		h.IncorrectGuesses = slices.Clone(h.IncorrectGuesses)
		return h
	})
}

// Choices returns every place name in dataset order.
func (s *Session) Choices() []string {
	return lo.Map(s.places, func(p PlaceRecord, _ int) string { return p.Placename })
}

// HintText returns the letter-count hint while a retry is pending.
func (s *Session) HintText() string {
	place := s.current.CurrentPlace
	if !s.current.HintVisible || place == nil || place.Placename == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(place.Placename)
	return fmt.Sprintf(hintFmt, utf8.RuneCountInString(place.Placename), string(first))
}

// FeedbackMessage is the text shown for the current feedback state.
func (s *Session) FeedbackMessage() string {
	switch s.current.Feedback {
	case FeedbackCorrect:
		return MessageCorrect
	case FeedbackIncorrectRetry:
		return MessageTryAgain
	case FeedbackIncorrectRevealed:
		if s.current.CurrentPlace == nil {
			return ""
		}
		return fmt.Sprintf(messageRevealedFmt, s.current.CurrentPlace.Placename)
	default:
		return ""
	}
}

// Snapshot copies the session state for rendering.
func (s *Session) Snapshot() Snapshot {
	q := s.current
	q.CurrentPlace = s.CurrentPlace()
	q.IncorrectGuesses = s.IncorrectGuesses()

	snap := Snapshot{
		Question:        q,
		Answered:        s.IsAnswered(),
		FeedbackMessage: s.FeedbackMessage(),
		HintText:        s.HintText(),
		Choices:         s.Choices(),
		History:         s.History(),
		HistoryVisible:  s.historyVisible,
	}
	if q.ShowLink && q.CurrentPlace != nil {
		links := ExternalLinks(q.CurrentPlace.Placename)
		snap.Links = &links
	}
	return snap
}

// randomIndex picks uniformly from [0, n) using crypto/rand, falling back
// to the first index if the random source fails.
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		log.Warn().Err(err).Msg("Error generating random number, using fallback")
		return 0
	}
	return int(v.Int64())
}
