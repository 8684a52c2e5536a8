package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/ports"
)

const gamesCollection = "games"

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{coll: db.Collection(gamesCollection)}
}

type gameDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Genre          string             `bson:"genre"`
	Platforms      []string           `bson:"platforms"`
	ReleaseDate    time.Time          `bson:"release_date"`
	HasMultiplayer bool               `bson:"has_multiplayer"`
	Description    string             `bson:"description,omitempty"`
	ImageURL       string             `bson:"image_url,omitempty"`
	Rating         *float64           `bson:"rating,omitempty"`
	CreatedBy      string             `bson:"created_by"`
	UpdatedBy      string             `bson:"updated_by,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func toGameDoc(g *domain.Game) gameDoc {
	return gameDoc{
		Name:           g.Name,
		Genre:          g.Genre,
		Platforms:      g.Platforms,
		ReleaseDate:    g.ReleaseDate,
		HasMultiplayer: g.HasMultiplayer,
		Description:    g.Description,
		ImageURL:       g.ImageURL,
		Rating:         g.Rating,
		CreatedBy:      g.CreatedBy,
		UpdatedBy:      g.UpdatedBy,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func (d *gameDoc) toDomain() *domain.Game {
	return &domain.Game{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Genre:          d.Genre,
		Platforms:      d.Platforms,
		ReleaseDate:    d.ReleaseDate,
		HasMultiplayer: d.HasMultiplayer,
		Description:    d.Description,
		ImageURL:       d.ImageURL,
		Rating:         d.Rating,
		CreatedBy:      d.CreatedBy,
		UpdatedBy:      d.UpdatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toGameDoc(game))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateGameName
		}
		return nil, fmt.Errorf("insert game: %w", err)
	}

	created := *game
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	var doc gameDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GameRepository) FindByName(ctx context.Context, name string) (*domain.Game, error) {
	var doc gameDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return doc.toDomain(), nil
}

// buildGameFilter translates the validated list parameters into a conjunctive
// bson filter. Absent parameters contribute no clause.
func buildGameFilter(f ports.ListGamesFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.Genre != "" {
		filter["genre"] = f.Genre
	}
	if f.YearFrom != 0 || f.YearTo != 0 {
		bounds := bson.M{}
		if f.YearFrom != 0 {
			bounds["$gte"] = time.Date(f.YearFrom, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		if f.YearTo != 0 {
			bounds["$lt"] = time.Date(f.YearTo+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		filter["release_date"] = bounds
	}
	if f.Multiplayer != nil {
		filter["has_multiplayer"] = *f.Multiplayer
	}

	return filter
}

func (r *GameRepository) List(ctx context.Context, f ports.ListGamesFilter) ([]*domain.Game, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildGameFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find games: %w", err)
	}
	defer cur.Close(ctx)

	// Empty pages stay JSON arrays, never null.
	games := []*domain.Game{}
	for cur.Next(ctx) {
		var doc gameDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, doc.toDomain())
	}
	return games, total, cur.Err()
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toGameDoc(game))
	if err != nil {
		// A rename can still race another writer; the unique index is the
		// authoritative guard.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateGameName
		}
		return nil, fmt.Errorf("replace game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGameNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// YearRange aggregates the minimum and maximum release year over the
// whole catalog in a single pipeline pass.
func (r *GameRepository) YearRange(ctx context.Context) (int, int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"min_year": bson.M{"$min": bson.M{"$year": "$release_date"}},
			"max_year": bson.M{"$max": bson.M{"$year": "$release_date"}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, false, fmt.Errorf("aggregate year range: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		MinYear int `bson:"min_year"`
		MaxYear int `bson:"max_year"`
	}
	if !cur.Next(ctx) {
		return 0, 0, false, cur.Err()
	}
	if err := cur.Decode(&result); err != nil {
		return 0, 0, false, fmt.Errorf("decode year range: %w", err)
	}
	return result.MinYear, result.MaxYear, true, nil
}

// EnsureIndexes creates the unique name index plus the secondary indexes
// backing the filter queries.
func (r *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{Keys: bson.D{{Key: "platforms", Value: 1}}},
		{Keys: bson.D{{Key: "release_date", Value: 1}}},
		{Keys: bson.D{{Key: "has_multiplayer", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
