package services

import (
	"context"
	"errors"
	"log/slog"

	"societyhub-be/events"
	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxVoteAttempts bounds how often a vote is revalidated when the poll is
// replaced between load and write.
const maxVoteAttempts = 3

// PollService creates polls on meetings, records ballots and computes tallies.
type PollService struct {
	store     PollStore
	publisher EventPublisher
}

func NewPollService(store PollStore, publisher EventPublisher) *PollService {
	return &PollService{store: store, publisher: publisher}
}

// CreatePoll attaches a fresh poll to the meeting, discarding any previous
// poll and its ballots.
func (s *PollService) CreatePoll(ctx context.Context, meetingID primitive.ObjectID, question string, options []string, actor models.Actor) (*models.Poll, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}

	meeting, err := s.store.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	updated, err := meeting.AttachPoll(question, options)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplacePoll(ctx, meetingID, updated.Poll); err != nil {
		return nil, err
	}

	if meeting.Poll != nil && meeting.Poll.VoteCount() > 0 {
		slog.Info("Poll replaced, previous ballots discarded",
			"meeting", meetingID.Hex(), "ballots", meeting.Poll.VoteCount())
	}
	publish(ctx, s.publisher, events.Event{
		Type:    events.PollCreated,
		Subject: meetingID.Hex(),
		Actor:   actor.UserID.Hex(),
		Data: map[string]interface{}{
			"question": updated.Poll.Question,
			"options":  updated.Poll.Options,
		},
	})
	return updated.Poll, nil
}

// Vote records the voter's ballot, replacing any earlier one. The ballot is
// validated against the loaded poll and written only if that poll is still
// the current one; otherwise the meeting is reloaded and the vote revalidated.
func (s *PollService) Vote(ctx context.Context, meetingID primitive.ObjectID, optionIndex int, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return err
	}

	var err error
	for attempt := 1; attempt <= maxVoteAttempts; attempt++ {
		var meeting *models.Meeting
		meeting, err = s.store.FindByID(ctx, meetingID)
		if err != nil {
			return err
		}
		var voted models.Meeting
		voted, err = meeting.CastVote(actor.UserID, optionIndex)
		if err != nil {
			return err
		}

		err = s.store.UpsertBallot(ctx, meetingID, voted.Poll.Revision, models.Ballot{
			VoterID:     actor.UserID,
			OptionIndex: optionIndex,
		})
		if !errors.Is(err, models.ErrPollChanged) {
			return err
		}
		slog.Debug("Poll changed during vote, retrying", "meeting", meetingID.Hex(), "attempt", attempt)
	}
	return err
}

// Results tallies the meeting's poll.
func (s *PollService) Results(ctx context.Context, meetingID primitive.ObjectID, actor models.Actor) (models.Tally, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return models.Tally{}, err
	}

	meeting, err := s.store.FindByID(ctx, meetingID)
	if err != nil {
		return models.Tally{}, err
	}
	return meeting.Tally()
}

// DeletePoll removes the meeting's poll. A meeting without a poll is left as is.
func (s *PollService) DeletePoll(ctx context.Context, meetingID primitive.ObjectID, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.store.RemovePoll(ctx, meetingID); err != nil {
		return err
	}
	publish(ctx, s.publisher, events.Event{
		Type:    events.PollDeleted,
		Subject: meetingID.Hex(),
		Actor:   actor.UserID.Hex(),
	})
	return nil
}
