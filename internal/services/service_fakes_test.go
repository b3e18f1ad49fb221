package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"sojourn/internal/models/db_models"
	"sojourn/internal/repositories"
)

// In-memory repository fakes. Maps keyed by id, no locking: service tests
// are single-goroutine.

var (
	_ repositories.TripRepository       = (*fakeTripRepo)(nil)
	_ repositories.ActivityRepository   = (*fakeActivityRepo)(nil)
	_ repositories.UserRepository       = (*fakeUserRepo)(nil)
	_ repositories.FriendshipRepository = (*fakeFriendshipRepo)(nil)
)

type fakeTripRepo struct {
	trips  map[uuid.UUID]*db_models.Trip
	shares map[uuid.UUID]*db_models.TripShare
	images []db_models.TripImage

	// activities, when set, lets DeleteCascade sweep descendant rows the
	// way the real repository does.
	activities *fakeActivityRepo
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips:  map[uuid.UUID]*db_models.Trip{},
		shares: map[uuid.UUID]*db_models.TripShare{},
	}
}

func (f *fakeTripRepo) Insert(_ context.Context, trip *db_models.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	now := time.Now().Unix()
	trip.CreatedAt, trip.UpdatedAt = now, now
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Trip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *trip
	return &cp, nil
}

func (f *fakeTripRepo) Save(_ context.Context, trip *db_models.Trip) error {
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripRepo) DeleteCascade(_ context.Context, tripID uuid.UUID) error {
	for id, share := range f.shares {
		if share.TripID == tripID {
			delete(f.shares, id)
		}
	}
	kept := f.images[:0]
	for _, img := range f.images {
		if img.TripID != tripID {
			kept = append(kept, img)
		}
	}
	f.images = kept
	if f.activities != nil {
		for id, activity := range f.activities.activities {
			if activity.TripID != tripID {
				continue
			}
			delete(f.activities.weather, id)
			if activity.LocationID != nil {
				delete(f.activities.locations, *activity.LocationID)
			}
			delete(f.activities.activities, id)
		}
		kept := f.activities.images[:0]
		for _, img := range f.activities.images {
			if img.TripID != tripID {
				kept = append(kept, img)
			}
		}
		f.activities.images = kept
	}
	delete(f.trips, tripID)
	return nil
}

func (f *fakeTripRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, filter repositories.TripListFilter) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, trip := range f.trips {
		if trip.OwnerID != ownerID {
			continue
		}
		if filter.Status != nil && trip.Status != *filter.Status {
			continue
		}
		if filter.Archived != nil && trip.IsArchived != *filter.Archived {
			continue
		}
		if filter.Shared != nil && trip.IsShared != *filter.Shared {
			continue
		}
		out = append(out, *trip)
	}
	return out, nil
}

func (f *fakeTripRepo) ListSharedWithUser(_ context.Context, userID uuid.UUID) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, share := range f.shares {
		if share.UserID != userID {
			continue
		}
		if trip, ok := f.trips[share.TripID]; ok {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) SetIsShared(_ context.Context, tripID uuid.UUID, shared bool) error {
	if trip, ok := f.trips[tripID]; ok {
		trip.IsShared = shared
	}
	return nil
}

func (f *fakeTripRepo) CountActivities(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeTripRepo) FirstCoverImage(_ context.Context, tripID uuid.UUID) (*db_models.TripImage, error) {
	for _, img := range f.images {
		if img.TripID == tripID && img.ActivityID == nil {
			cp := img
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTripRepo) FindShare(_ context.Context, tripID, userID uuid.UUID) (*db_models.TripShare, error) {
	for _, share := range f.shares {
		if share.TripID == tripID && share.UserID == userID {
			cp := *share
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTripRepo) InsertShare(_ context.Context, share *db_models.TripShare) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	cp := *share
	f.shares[share.ID] = &cp
	return nil
}

func (f *fakeTripRepo) UpdateSharePermission(_ context.Context, shareID uuid.UUID, permission string) error {
	if share, ok := f.shares[shareID]; ok {
		share.Permission = permission
	}
	return nil
}

func (f *fakeTripRepo) DeleteShare(_ context.Context, shareID uuid.UUID) error {
	delete(f.shares, shareID)
	return nil
}

func (f *fakeTripRepo) ListShares(_ context.Context, tripID uuid.UUID) ([]db_models.TripShare, error) {
	var out []db_models.TripShare
	for _, share := range f.shares {
		if share.TripID == tripID {
			out = append(out, *share)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) CountShares(_ context.Context, tripID uuid.UUID) (int64, error) {
	var n int64
	for _, share := range f.shares {
		if share.TripID == tripID {
			n++
		}
	}
	return n, nil
}

type fakeActivityRepo struct {
	activities map[uuid.UUID]*db_models.Activity
	locations  map[uuid.UUID]*db_models.Location
	weather    map[uuid.UUID]*db_models.ActivityWeather // keyed by activity id
	images     []db_models.TripImage
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		activities: map[uuid.UUID]*db_models.Activity{},
		locations:  map[uuid.UUID]*db_models.Location{},
		weather:    map[uuid.UUID]*db_models.ActivityWeather{},
	}
}

func (f *fakeActivityRepo) Insert(_ context.Context, activity *db_models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	now := time.Now().Unix()
	activity.CreatedAt, activity.UpdatedAt = now, now
	cp := *activity
	f.activities[activity.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, nil
	}
	cp := *activity
	return &cp, nil
}

func (f *fakeActivityRepo) Save(_ context.Context, activity *db_models.Activity) error {
	cp := *activity
	f.activities[activity.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.activities, id)
	return nil
}

func (f *fakeActivityRepo) ListByTrip(_ context.Context, tripID uuid.UUID, date *time.Time, activityType *string) ([]db_models.Activity, error) {
	var out []db_models.Activity
	for _, activity := range f.activities {
		if activity.TripID != tripID {
			continue
		}
		if date != nil {
			y1, m1, d1 := activity.StartDatetime.Date()
			y2, m2, d2 := date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		if activityType != nil && activity.ActivityType != *activityType {
			continue
		}
		out = append(out, *activity)
	}
	return out, nil
}

func (f *fakeActivityRepo) FindLocation(_ context.Context, id uuid.UUID) (*db_models.Location, error) {
	location, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *location
	return &cp, nil
}

func (f *fakeActivityRepo) InsertLocation(_ context.Context, location *db_models.Location) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	cp := *location
	f.locations[location.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) SaveLocation(_ context.Context, location *db_models.Location) error {
	cp := *location
	f.locations[location.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) FindWeatherByActivity(_ context.Context, activityID uuid.UUID) (*db_models.ActivityWeather, error) {
	weather, ok := f.weather[activityID]
	if !ok {
		return nil, nil
	}
	cp := *weather
	return &cp, nil
}

func (f *fakeActivityRepo) InsertWeather(_ context.Context, weather *db_models.ActivityWeather) error {
	if weather.ID == uuid.Nil {
		weather.ID = uuid.New()
	}
	cp := *weather
	f.weather[weather.ActivityID] = &cp
	return nil
}

func (f *fakeActivityRepo) SaveWeather(_ context.Context, weather *db_models.ActivityWeather) error {
	cp := *weather
	f.weather[weather.ActivityID] = &cp
	return nil
}

func (f *fakeActivityRepo) DeleteWeatherByActivity(_ context.Context, activityID uuid.UUID) error {
	delete(f.weather, activityID)
	return nil
}

func (f *fakeActivityRepo) InsertImages(_ context.Context, images []db_models.TripImage) error {
	for i := range images {
		if images[i].ID == uuid.Nil {
			images[i].ID = uuid.New()
		}
	}
	f.images = append(f.images, images...)
	return nil
}

func (f *fakeActivityRepo) ListImagesByActivity(_ context.Context, activityID uuid.UUID) ([]db_models.TripImage, error) {
	var out []db_models.TripImage
	for _, img := range f.images {
		if img.ActivityID != nil && *img.ActivityID == activityID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) DeleteImagesByActivity(_ context.Context, activityID uuid.UUID) error {
	kept := f.images[:0]
	for _, img := range f.images {
		if img.ActivityID == nil || *img.ActivityID != activityID {
			kept = append(kept, img)
		}
	}
	f.images = kept
	return nil
}

type fakeUserRepo struct {
	users       map[uuid.UUID]*db_models.User
	profiles    map[uuid.UUID]*db_models.UserProfile // keyed by user id
	resetTokens map[string]*db_models.PasswordResetToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       map[uuid.UUID]*db_models.User{},
		profiles:    map[uuid.UUID]*db_models.UserProfile{},
		resetTokens: map[string]*db_models.PasswordResetToken{},
	}
}

func (f *fakeUserRepo) addUser(email, username string) *db_models.User {
	user := &db_models.User{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Email:     email,
		Username:  username,
		IsActive:  true,
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*db_models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, userID uuid.UUID, hash string) error {
	if user, ok := f.users[userID]; ok {
		user.PasswordHash = hash
	}
	return nil
}

func (f *fakeUserRepo) Search(_ context.Context, query string, excludeID uuid.UUID, limit int) ([]db_models.User, error) {
	var out []db_models.User
	for _, user := range f.users {
		if user.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(query)) {
			out = append(out, *user)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindProfile(_ context.Context, userID uuid.UUID) (*db_models.UserProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *profile
	return &cp, nil
}

func (f *fakeUserRepo) InsertProfile(_ context.Context, profile *db_models.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) SaveProfile(_ context.Context, profile *db_models.UserProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) InsertResetToken(_ context.Context, token *db_models.PasswordResetToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	cp := *token
	f.resetTokens[token.Token] = &cp
	return nil
}

func (f *fakeUserRepo) FindResetToken(_ context.Context, token string) (*db_models.PasswordResetToken, error) {
	row, ok := f.resetTokens[token]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeUserRepo) DeleteResetToken(_ context.Context, token string) error {
	delete(f.resetTokens, token)
	return nil
}

type fakeFriendshipRepo struct {
	rows map[uuid.UUID]*db_models.Friendship
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{rows: map[uuid.UUID]*db_models.Friendship{}}
}

func (f *fakeFriendshipRepo) Insert(_ context.Context, friendship *db_models.Friendship) error {
	if friendship.ID == uuid.Nil {
		friendship.ID = uuid.New()
	}
	cp := *friendship
	f.rows[friendship.ID] = &cp
	return nil
}

func (f *fakeFriendshipRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Friendship, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeFriendshipRepo) FindBetween(_ context.Context, a, b uuid.UUID) (*db_models.Friendship, error) {
	for _, row := range f.rows {
		if (row.RequesterID == a && row.RecipientID == b) || (row.RequesterID == b && row.RecipientID == a) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendshipRepo) FindAcceptedBetween(_ context.Context, a, b uuid.UUID) (*db_models.Friendship, error) {
	for _, row := range f.rows {
		if row.Status != db_models.FriendshipAccepted {
			continue
		}
		if (row.RequesterID == a && row.RecipientID == b) || (row.RequesterID == b && row.RecipientID == a) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendshipRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if row, ok := f.rows[id]; ok {
		row.Status = status
	}
	return nil
}

func (f *fakeFriendshipRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeFriendshipRepo) ListAcceptedFor(_ context.Context, userID uuid.UUID) ([]db_models.Friendship, error) {
	var out []db_models.Friendship
	for _, row := range f.rows {
		if row.Status == db_models.FriendshipAccepted && (row.RequesterID == userID || row.RecipientID == userID) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) ListPendingFor(_ context.Context, recipientID uuid.UUID) ([]db_models.Friendship, error) {
	var out []db_models.Friendship
	for _, row := range f.rows {
		if row.Status == db_models.FriendshipPending && row.RecipientID == recipientID {
			out = append(out, *row)
		}
	}
	return out, nil
}
