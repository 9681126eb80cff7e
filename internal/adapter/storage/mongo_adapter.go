package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minimart/backend/internal/core/domain"
)

// MongoAdapter holds catalog entries as documents in the products collection.
// Ids are store-generated ObjectIDs rendered as hex.
type MongoAdapter struct {
	coll *mongo.Collection
}

func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{coll: db.Collection("products")}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
}

func (d productDoc) entry() domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
	}
}

func (m *MongoAdapter) Get(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A ref that can never address a document is absent, not a failure.
		return nil, nil
	}

	var doc productDoc
	err = m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find product", err)
	}

	entry := doc.entry()
	return &entry, nil
}

func (m *MongoAdapter) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("find products", err)
	}

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("decode products", err)
	}

	entries := make([]domain.CatalogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, doc.entry())
	}
	return entries, nil
}

func (m *MongoAdapter) Insert(ctx context.Context, entry domain.CatalogEntry) (string, error) {
	doc := productDoc{
		Name:        entry.Name,
		Price:       entry.Price,
		Description: entry.Description,
	}

	result, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", storeErr("insert product", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", storeErr("insert product", errors.New("unexpected inserted id type"))
	}

	return oid.Hex(), nil
}

func (m *MongoAdapter) Update(ctx context.Context, id string, patch domain.CatalogPatch) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	if patch.Empty() {
		// Nothing to set; still report whether the document exists.
		count, err := m.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return false, storeErr("count product", err)
		}
		return count > 0, nil
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	result, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, storeErr("update product", err)
	}

	return result.MatchedCount > 0, nil
}

func (m *MongoAdapter) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete product", err)
	}

	return result.DeletedCount > 0, nil
}
