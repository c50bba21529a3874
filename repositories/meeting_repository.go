package repositories

import (
	"context"
	"fmt"
	"time"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MeetingRepository struct {
	store[models.Meeting]
}

func NewMeetingRepository(db *mongo.Database) *MeetingRepository {
	return &MeetingRepository{store: newStore[models.Meeting](db, models.MeetingsCollection, "Meeting")}
}

func (r *MeetingRepository) Create(ctx context.Context, m *models.Meeting) error {
	id, err := r.insert(ctx, m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// List returns every meeting, earliest first.
func (r *MeetingRepository) List(ctx context.Context) ([]models.Meeting, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "date", Value: 1}})
}

func (r *MeetingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	return r.findByID(ctx, id)
}

func (r *MeetingRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.MeetingUpdate) (*models.Meeting, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Agenda != nil {
		set["agenda"] = *upd.Agenda
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	return r.updateByID(ctx, id, bson.M{"$set": set})
}

// DeleteByID removes the meeting together with its embedded poll.
func (r *MeetingRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

// ReplacePoll atomically swaps the embedded poll, discarding previous ballots.
func (r *MeetingRepository) ReplacePoll(ctx context.Context, id primitive.ObjectID, poll *models.Poll) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"poll": poll, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("replace poll: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound("Meeting not found")
	}
	return nil
}

// RemovePoll unsets the embedded poll. Removing an absent poll is not an error.
func (r *MeetingRepository) RemovePoll(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"poll": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("remove poll: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound("Meeting not found")
	}
	return nil
}

// UpsertBallot drops any ballot held by the voter and appends the new one in a
// single pipeline update, so concurrent voters on the same meeting never
// overwrite each other. The update only applies while the poll still carries
// revision and the option index exists.
func (r *MeetingRepository) UpsertBallot(ctx context.Context, id, revision primitive.ObjectID, ballot models.Ballot) error {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "poll.revision", Value: revisionMatch(revision)},
		{Key: fmt.Sprintf("poll.options.%d", ballot.OptionIndex), Value: bson.M{"$exists": true}},
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "poll.votes", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$poll.votes", bson.A{}}}}},
					{Key: "as", Value: "ballot"},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$ballot.userId", ballot.VoterID}}}},
				}}},
				bson.A{bson.D{
					{Key: "userId", Value: ballot.VoterID},
					{Key: "optionIndex", Value: ballot.OptionIndex},
				}},
			}}}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("upsert ballot: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrPollChanged
	}
	return nil
}

// Polls written before revisions existed have no revision field; they are
// matched by the zero revision.
func revisionMatch(revision primitive.ObjectID) interface{} {
	if revision.IsZero() {
		return bson.M{"$in": bson.A{nil, revision}}
	}
	return revision
}
