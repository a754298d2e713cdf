package enrollment

import "context"

// StateRepository defines the database operations for wizard sessions.
type StateRepository interface {
	SaveEnrollmentState(ctx context.Context, state *State) error
	LoadEnrollmentState(ctx context.Context, id string) (*State, error)
	DeleteEnrollmentState(ctx context.Context, id string) error
}

// MongoStateStorage is an adapter that wraps the database operations.
type MongoStateStorage struct {
	repo StateRepository
}

func NewMongoStateStorage(repo StateRepository) *MongoStateStorage {
	return &MongoStateStorage{repo: repo}
}

func (s *MongoStateStorage) Save(ctx context.Context, state *State) error {
	return s.repo.SaveEnrollmentState(ctx, state)
}

func (s *MongoStateStorage) Load(ctx context.Context, id string) (*State, error) {
	return s.repo.LoadEnrollmentState(ctx, id)
}

func (s *MongoStateStorage) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteEnrollmentState(ctx, id)
}
