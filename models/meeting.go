package models

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultMeetingLocation = "Society Hall"

// Meeting is a scheduled society meeting. It owns at most one Poll.
type Meeting struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Agenda    string             `bson:"agenda" json:"agenda"`
	Date      time.Time          `bson:"date" json:"date"`
	Location  string             `bson:"location" json:"location"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Poll      *Poll              `bson:"poll,omitempty" json:"poll,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Ballot is one voter's recorded choice.
type Ballot struct {
	VoterID     primitive.ObjectID `bson:"userId" json:"userId"`
	OptionIndex int                `bson:"optionIndex" json:"optionIndex"`
}

// Poll is the question embedded in a meeting. Ballots are keyed by voter so a
// voter can never hold two of them; the list form only exists in storage.
//
// Revision changes every time a poll is attached, which lets the repository
// refuse a ballot computed against a poll that has since been replaced.
type Poll struct {
	Question string
	Options  []string
	Revision primitive.ObjectID
	ballots  map[primitive.ObjectID]int
}

// Tally is the per-option count derived from a poll's ballots.
type Tally struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Votes    []int    `json:"votes"`
}

type pollDocument struct {
	Question string             `bson:"question"`
	Options  []string           `bson:"options"`
	Revision primitive.ObjectID `bson:"revision"`
	Votes    []Ballot           `bson:"votes"`
}

// NewPoll validates the question and options and returns a poll with no ballots.
func NewPoll(question string, options []string) (*Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrValidation("Poll question is required")
	}
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			cleaned = append(cleaned, opt)
		}
	}
	if len(cleaned) < 2 {
		return nil, ErrValidation("Poll needs at least 2 options")
	}
	return &Poll{
		Question: question,
		Options:  cleaned,
		Revision: primitive.NewObjectID(),
		ballots:  map[primitive.ObjectID]int{},
	}, nil
}

// choice returns the option index recorded for voter, if any.
func (p *Poll) choice(voter primitive.ObjectID) (int, bool) {
	idx, ok := p.ballots[voter]
	return idx, ok
}

// VoteCount is the number of distinct voters.
func (p *Poll) VoteCount() int {
	return len(p.ballots)
}

// Ballots materialises the ballot set in a stable order.
func (p *Poll) Ballots() []Ballot {
	out := make([]Ballot, 0, len(p.ballots))
	for voter, idx := range p.ballots {
		out = append(out, Ballot{VoterID: voter, OptionIndex: idx})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VoterID.Hex() < out[j].VoterID.Hex()
	})
	return out
}

func (p *Poll) validIndex(idx int) bool {
	return idx >= 0 && idx < len(p.Options)
}

func (p *Poll) clone() *Poll {
	cp := &Poll{
		Question: p.Question,
		Options:  append([]string(nil), p.Options...),
		Revision: p.Revision,
		ballots:  make(map[primitive.ObjectID]int, len(p.ballots)),
	}
	for voter, idx := range p.ballots {
		cp.ballots[voter] = idx
	}
	return cp
}

func (p Poll) MarshalBSON() ([]byte, error) {
	return bson.Marshal(pollDocument{
		Question: p.Question,
		Options:  p.Options,
		Revision: p.Revision,
		Votes:    p.Ballots(),
	})
}

// UnmarshalBSON folds the stored ballot list back into the keyed set. Should a
// stored list ever hold two ballots for one voter, the later one wins, and
// ballots pointing outside the options are dropped.
func (p *Poll) UnmarshalBSON(data []byte) error {
	var doc pollDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.Question = doc.Question
	p.Options = doc.Options
	p.Revision = doc.Revision
	p.ballots = make(map[primitive.ObjectID]int, len(doc.Votes))
	for _, b := range doc.Votes {
		if p.validIndex(b.OptionIndex) {
			p.ballots[b.VoterID] = b.OptionIndex
		}
	}
	return nil
}

// MarshalJSON exposes the poll without individual ballots.
func (p Poll) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Question   string   `json:"question"`
		Options    []string `json:"options"`
		TotalVotes int      `json:"totalVotes"`
	}{p.Question, p.Options, len(p.ballots)})
}

// AttachPoll returns a copy of m carrying a fresh poll. Any existing poll and
// its ballots are discarded. On error m is returned unchanged.
func (m Meeting) AttachPoll(question string, options []string) (Meeting, error) {
	poll, err := NewPoll(question, options)
	if err != nil {
		return m, err
	}
	m.Poll = poll
	return m, nil
}

// CastVote returns a copy of m where voter's ballot is optionIndex. A previous
// ballot by the same voter is replaced.
func (m Meeting) CastVote(voter primitive.ObjectID, optionIndex int) (Meeting, error) {
	if m.Poll == nil {
		return m, ErrNotFound("Poll not available")
	}
	if !m.Poll.validIndex(optionIndex) {
		return m, ErrValidation("Option index %d is out of range", optionIndex)
	}
	poll := m.Poll.clone()
	poll.ballots[voter] = optionIndex
	m.Poll = poll
	return m, nil
}

// Tally counts ballots per option. Options nobody chose report 0.
func (m Meeting) Tally() (Tally, error) {
	if m.Poll == nil {
		return Tally{}, ErrNotFound("Poll not found")
	}
	counts := make([]int, len(m.Poll.Options))
	for _, idx := range m.Poll.ballots {
		if m.Poll.validIndex(idx) {
			counts[idx]++
		}
	}
	return Tally{
		Question: m.Poll.Question,
		Options:  append([]string(nil), m.Poll.Options...),
		Votes:    counts,
	}, nil
}

// DetachPoll returns a copy of m without a poll. Detaching twice is fine.
func (m Meeting) DetachPoll() Meeting {
	m.Poll = nil
	return m
}

// MeetingUpdate carries the admin-editable fields; nil means unchanged.
type MeetingUpdate struct {
	Title    *string
	Agenda   *string
	Date     *time.Time
	Location *string
}

// Validate checks the fields required when scheduling a meeting and applies
// the default location.
func (m *Meeting) Validate() error {
	m.Title = strings.TrimSpace(m.Title)
	m.Agenda = strings.TrimSpace(m.Agenda)
	m.Location = strings.TrimSpace(m.Location)
	if m.Title == "" {
		return ErrValidation("Title is required")
	}
	if m.Agenda == "" {
		return ErrValidation("Agenda is required")
	}
	if m.Date.IsZero() {
		return ErrValidation("Date is required")
	}
	if m.Location == "" {
		m.Location = DefaultMeetingLocation
	}
	return nil
}
