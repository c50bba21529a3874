package repositories

import (
	"context"
	"testing"
	"time"

	"societyhub-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const meetingsNS = "society.meetings"

func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func pollMeeting(t *testing.T) models.Meeting {
	t.Helper()
	m := models.Meeting{
		ID:       primitive.NewObjectID(),
		Title:    "AGM",
		Agenda:   "Painting",
		Date:     time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
		Location: models.DefaultMeetingLocation,
	}
	m, err := m.AttachPoll("Paint color?", []string{"Red", "Blue"})
	require.NoError(t, err)
	m, err = m.CastVote(primitive.NewObjectID(), 1)
	require.NoError(t, err)
	return m
}

// sentUpdate returns the single update statement the repository sent.
func sentUpdate(mt *mtest.T) bson.Raw {
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "update", evt.CommandName)
	return evt.Command.Lookup("updates", "0").Document()
}

func TestMeetingRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found with poll", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		want := pollMeeting(t)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, meetingsNS, mtest.FirstBatch, toDoc(t, want)))

		got, err := repo.FindByID(context.Background(), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Title, got.Title)
		require.NotNil(t, got.Poll)
		assert.Equal(t, want.Poll.Revision, got.Poll.Revision)

		tally, err := got.Tally()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, tally.Votes)
	})

	mt.Run("not found", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, meetingsNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Meeting not found", nf.Message)
	})
}

func TestMeetingRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		first, second := pollMeeting(t), pollMeeting(t)
		second.Poll = nil
		mt.AddMockResponses(mtest.CreateCursorResponse(0, meetingsNS, mtest.FirstBatch,
			toDoc(t, first), toDoc(t, second)))

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.NotNil(t, got[0].Poll)
		assert.Nil(t, got[1].Poll)
	})
}

func TestMeetingRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		m := &models.Meeting{Title: "AGM", Agenda: "Budget", Date: time.Now()}
		require.NoError(t, repo.Create(context.Background(), m))
		assert.False(t, m.ID.IsZero())
	})
}

func TestMeetingRepository_PollWrites(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	matched := func(n int) bson.D {
		return mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: n},
			bson.E{Key: "nModified", Value: n},
		)
	}

	mt.Run("replace poll", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		poll, err := models.NewPoll("Q", []string{"A", "B"})
		require.NoError(t, err)
		mt.AddMockResponses(matched(1))
		id := primitive.NewObjectID()

		require.NoError(t, repo.ReplacePoll(context.Background(), id, poll))

		upd := sentUpdate(mt)
		assert.Equal(t, id, upd.Lookup("q", "_id").ObjectID())
		assert.Equal(t, poll.Revision, upd.Lookup("u", "$set", "poll", "revision").ObjectID())
		assert.Equal(t, "Q", upd.Lookup("u", "$set", "poll", "question").StringValue())
		votes, err := upd.Lookup("u", "$set", "poll", "votes").Array().Values()
		require.NoError(t, err)
		assert.Empty(t, votes)
	})

	mt.Run("replace poll on missing meeting", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		poll, err := models.NewPoll("Q", []string{"A", "B"})
		require.NoError(t, err)
		mt.AddMockResponses(matched(0))

		err = repo.ReplacePoll(context.Background(), primitive.NewObjectID(), poll)
		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	mt.Run("remove poll", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(matched(1))

		id := primitive.NewObjectID()

		require.NoError(t, repo.RemovePoll(context.Background(), id))

		upd := sentUpdate(mt)
		assert.Equal(t, id, upd.Lookup("q", "_id").ObjectID())
		unset, ok := upd.Lookup("u", "$unset", "poll").StringValueOK()
		require.True(t, ok)
		assert.Equal(t, "", unset)
	})

	mt.Run("upsert ballot", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(matched(1))
		id, revision, voter := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

		err := repo.UpsertBallot(context.Background(), id, revision,
			models.Ballot{VoterID: voter, OptionIndex: 1})
		require.NoError(t, err)

		upd := sentUpdate(mt)
		assert.Equal(t, id, upd.Lookup("q", "_id").ObjectID())
		assert.Equal(t, revision, upd.Lookup("q", "poll.revision").ObjectID())
		assert.True(t, upd.Lookup("q", "poll.options.1", "$exists").Boolean())

		votes := upd.Lookup("u", "0", "$set", "poll.votes", "$concatArrays").Array()
		kept := votes.Lookup("0", "$filter", "cond", "$ne")
		assert.Equal(t, "$$ballot.userId", kept.Array().Lookup("0").StringValue())
		assert.Equal(t, voter, kept.Array().Lookup("1").ObjectID())
		assert.Equal(t, voter, votes.Lookup("1", "0", "userId").ObjectID())
		assert.EqualValues(t, 1, votes.Lookup("1", "0", "optionIndex").AsInt64())
	})

	mt.Run("upsert ballot on poll without revision", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(matched(1))

		err := repo.UpsertBallot(context.Background(), primitive.NewObjectID(), primitive.NilObjectID,
			models.Ballot{VoterID: primitive.NewObjectID(), OptionIndex: 0})
		require.NoError(t, err)

		upd := sentUpdate(mt)
		in, err := upd.Lookup("q", "poll.revision", "$in").Array().Values()
		require.NoError(t, err)
		require.Len(t, in, 2)
		assert.Equal(t, bsontype.Null, in[0].Type)
		assert.Equal(t, primitive.NilObjectID, in[1].ObjectID())
	})

	mt.Run("upsert ballot against replaced poll", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(matched(0))

		err := repo.UpsertBallot(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
			models.Ballot{VoterID: primitive.NewObjectID(), OptionIndex: 0})
		assert.ErrorIs(t, err, models.ErrPollChanged)
	})

	mt.Run("server error", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad update",
		}))

		err := repo.UpsertBallot(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
			models.Ballot{VoterID: primitive.NewObjectID(), OptionIndex: 0})
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrPollChanged)
	})
}

func TestMeetingRepository_DeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(t, repo.DeleteByID(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("missing", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := repo.DeleteByID(context.Background(), primitive.NewObjectID())
		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestMeetingRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		m := pollMeeting(t)
		m.Title = "Renamed"
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toDoc(t, m)}))

		title := "Renamed"
		got, err := repo.Update(context.Background(), m.ID, models.MeetingUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	mt.Run("missing", func(mt *mtest.T) {
		t := mt.T
		repo := NewMeetingRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), primitive.NewObjectID(), models.MeetingUpdate{})
		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}
