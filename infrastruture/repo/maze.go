package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MazeRepo handles the persistence of generated mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the size and age index used to browse stored mazes.
func (m *MazeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "rows", Value: 1},
			{Key: "cols", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	})
	return err
}

// Save inserts or updates a maze in the repository.
// If the maze already exists, it updates the existing record.
// If the maze does not exist, it adds a new record.
func (m *MazeRepo) Save(maze *dmn.Maze) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": maze.ID}
	update := bson.M{
		"$set": bson.M{
			"rows":      maze.Rows,
			"cols":      maze.Cols,
			"seed":      maze.Seed,
			"index":     maze.Index,
			"strategy":  maze.Strategy,
			"valid":     maze.Valid,
			"layout":    maze.Layout,
			"updatedAt": time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": maze.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a maze by its ID.
// Returns dmn.ErrMazeNotFound if the maze is not found.
func (m *MazeRepo) ByID(id uuid.UUID) (*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var maze dmn.Maze
	if err := m.collection.FindOne(ctx, filter).Decode(&maze); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &maze, nil
}
