package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

// projectDoc is the stored shape. Capacity is kept raw because older
// documents hold it as a string or Decimal128 rather than a double.
type projectDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Owner      string             `bson:"owner"`
	EnergyType string             `bson:"energy_type"`
	Capacity   bson.RawValue      `bson:"capacity"`
	Location   string             `bson:"location"`
	Status     string             `bson:"status"`
	Year       int                `bson:"year"`
	Latitude   *float64           `bson:"latitude,omitempty"`
	Longitude  *float64           `bson:"longitude,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d projectDoc) toDomain() (domain.Project, error) {
	capacity, err := decodeCapacity(d.Capacity)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", d.ID.Hex(), err)
	}
	return domain.Project{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Owner:      d.Owner,
		EnergyType: domain.EnergyType(d.EnergyType),
		Capacity:   capacity,
		Location:   d.Location,
		Status:     domain.ProjectStatus(d.Status),
		Year:       d.Year,
		Latitude:   d.Latitude,
		Longitude:  d.Longitude,
		CreatedAt:  d.CreatedAt.UTC(),
	}, nil
}

// decodeCapacity accepts any numeric BSON type or a numeric string.
func decodeCapacity(v bson.RawValue) (float64, error) {
	switch v.Type {
	case bsontype.Double:
		return v.Double(), nil
	case bsontype.Int32:
		return float64(v.Int32()), nil
	case bsontype.Int64:
		return float64(v.Int64()), nil
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(v.Decimal128().String())
		if err != nil {
			return 0, domain.ErrInvalidCapacity
		}
		return d.InexactFloat64(), nil
	case bsontype.String:
		d, err := decimal.NewFromString(v.StringValue())
		if err != nil {
			return 0, domain.ErrInvalidCapacity
		}
		return d.InexactFloat64(), nil
	default:
		return 0, domain.ErrInvalidCapacity
	}
}

// List returns every project ordered by creation time.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Project{}
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"name":        p.Name,
		"owner":       p.Owner,
		"energy_type": string(p.EnergyType),
		"capacity":    p.Capacity,
		"location":    p.Location,
		"status":      string(p.Status),
		"year":        p.Year,
		"created_at":  p.CreatedAt,
	}
	if p.Latitude != nil {
		doc["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		doc["longitude"] = *p.Longitude
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := projectUpdate(patch)
	if len(update) == 0 {
		return r.Get(ctx, id)
	}

	var doc projectDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// projectUpdate turns a patch into $set and $unset operators. It returns an
// empty document when the patch changes nothing.
func projectUpdate(patch domain.ProjectPatch) bson.D {
	set := bson.D{}
	add := func(key string, v any) { set = append(set, bson.E{Key: key, Value: v}) }
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Owner != nil {
		add("owner", *patch.Owner)
	}
	if patch.EnergyType != nil {
		add("energy_type", string(*patch.EnergyType))
	}
	if patch.Capacity != nil {
		add("capacity", *patch.Capacity)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Year != nil {
		add("year", *patch.Year)
	}

	unset := bson.D{}
	if patch.ClearLatitude {
		unset = append(unset, bson.E{Key: "latitude", Value: ""})
	} else if patch.Latitude != nil {
		add("latitude", *patch.Latitude)
	}
	if patch.ClearLongitude {
		unset = append(unset, bson.E{Key: "longitude", Value: ""})
	} else if patch.Longitude != nil {
		add("longitude", *patch.Longitude)
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the indexes used by List.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, projectIndexes())
	return err
}

// projectIndexes covers the default ordering and the two enum filters.
func projectIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "energy_type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}
