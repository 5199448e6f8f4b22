// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and attaches JSON-Schema
// validators. Servers without collMod/validator support (e.g. some
// DocumentDB versions) are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("meetings", meetingsSchema())

	// Owned by the CRM; only make sure they exist so lookups never race creation.
	ensure("users", nil)
	ensure("contacts", nil)
	ensure("leads", nil)
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

// commandFailed reports whether err is a server command error with one of
// the given codes, or whose text contains one of the phrases.
func commandFailed(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// NamespaceExists (48).
func isNamespaceExistsErr(err error) bool {
	return commandFailed(err, []int32{48}, "already exists", "namespace exists")
}

// CommandNotFound (59).
func isNoSuchCommand(err error) bool {
	return commandFailed(err, []int32{59}, "no such command")
}

// CommandNotSupported (115), and DocumentDB's wording for the same.
func isNotImplemented(err error) bool {
	return commandFailed(err, []int32{115}, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func meetingsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"agenda", "deleted", "createdDate"},
			"properties": bson.M{
				"agenda":       bson.M{"bsonType": "string"},
				"attendes":     bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
				"attendesLead": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
				"location":     bson.M{"bsonType": "string"},
				"related":      bson.M{"enum": bson.A{"Contact", "Lead", ""}},
				"dateTime":     bson.M{"bsonType": "date"},
				"notes":        bson.M{"bsonType": "string"},
				"createBy":     bson.M{"bsonType": "objectId"},
				"timestamp":    bson.M{"bsonType": "date"},
				"deleted":      bson.M{"bsonType": "bool"},
				"createdDate":  bson.M{"bsonType": "date"},
			},
		},
	}
}
