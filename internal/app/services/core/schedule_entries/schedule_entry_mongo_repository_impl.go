package schedule_entries

import (
	"context"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleEntryMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleEntryMongoRepository(db *mongo.Client, dbName string) *ScheduleEntryMongoRepository {
	return &ScheduleEntryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionScheduleEntries),
	}
}

var _ contracts.ScheduleEntryRepository = (*ScheduleEntryMongoRepository)(nil)

// EnsureIndexes creates the lookup index used by client and week queries.
func (r *ScheduleEntryMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "client_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().SetName("client_date_time"),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionScheduleEntries)
	}

	_, err = r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().SetName("date_time"),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionScheduleEntries)
	}
	return nil
}

func (r *ScheduleEntryMongoRepository) FindAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	return r.find(ctx, bson.M{})
}

func (r *ScheduleEntryMongoRepository) FindByID(ctx context.Context, entryID string) (*models.ScheduleEntry, error) {
	var document scheduleEntryDocument
	err := r.Collection.FindOne(ctx, bson.M{"_id": entryID}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	entry, err := document.toModel()
	if err != nil {
		return nil, exceptions.ErrMongoDBDocumentConversion(err)
	}
	return &entry, nil
}

func (r *ScheduleEntryMongoRepository) FindByClientID(ctx context.Context, clientID string) ([]models.ScheduleEntry, error) {
	return r.find(ctx, bson.M{"client_id": clientID})
}

func (r *ScheduleEntryMongoRepository) FindByDateRange(ctx context.Context, from, to models.Date) ([]models.ScheduleEntry, error) {
	filter := bson.M{
		"date": bson.M{
			"$gte": from.String(),
			"$lt":  to.String(),
		},
	}
	return r.find(ctx, filter)
}

// ReplaceAll swaps the stored collection for entries inside one transaction.
// It needs a replica set or sharded cluster.
func (r *ScheduleEntryMongoRepository) ReplaceAll(ctx context.Context, entries []models.ScheduleEntry) error {
	ids := make([]string, 0, len(entries))
	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, entry := range entries {
		document, err := newScheduleEntryDocument(entry)
		if err != nil {
			return exceptions.ErrMongoDBDocumentConversion(err)
		}
		ids = append(ids, entry.ID)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": entry.ID}).
			SetReplacement(document).
			SetUpsert(true))
	}

	session, err := r.Collection.Database().Client().StartSession()
	if err != nil {
		return exceptions.ErrMongoDBStartSession(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.Collection.DeleteMany(sc, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
			return nil, err
		}
		if len(writes) == 0 {
			return nil, nil
		}
		return r.Collection.BulkWrite(sc, writes, options.BulkWrite().SetOrdered(false))
	})
	if err != nil {
		return exceptions.ErrMongoDBReplaceDocuments(err)
	}
	return nil
}

func (r *ScheduleEntryMongoRepository) DeleteByID(ctx context.Context, entryID string) (bool, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *ScheduleEntryMongoRepository) find(ctx context.Context, filter bson.M) ([]models.ScheduleEntry, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var entries []models.ScheduleEntry
	for cursor.Next(ctx) {
		var document scheduleEntryDocument
		if err := cursor.Decode(&document); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		entry, err := document.toModel()
		if err != nil {
			return nil, exceptions.ErrMongoDBDocumentConversion(err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}
