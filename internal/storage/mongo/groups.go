package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/allocash/internal/models"
)

type groupDoc struct {
	ID        string   `bson:"_id"`
	UserID    string   `bson:"user_id"`
	Name      string   `bson:"name"`
	Members   []string `bson:"members"`
	CreatedAt int64    `bson:"created_at"`
}

func (d groupDoc) toModel() *models.Group {
	members := d.Members
	if members == nil {
		members = []string{}
	}
	return &models.Group{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Members:   members,
		CreatedAt: d.CreatedAt,
	}
}

// CreateGroup persists a new group.
func (s *MongoStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.groups.InsertOne(ctx, groupDoc{
		ID:        group.ID,
		UserID:    group.UserID,
		Name:      group.Name,
		Members:   group.Members,
		CreatedAt: group.CreatedAt,
	})
	if err != nil {
		return storageErr("insert group", err)
	}
	return nil
}

// GetGroup retrieves one of the user's groups by ID.
func (s *MongoStore) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	var doc groupDoc
	err := s.groups.FindOne(ctx, byUser(userID, groupID)).Decode(&doc)
	if isNoDocuments(err) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, storageErr("get group", err)
	}
	return doc.toModel(), nil
}

// ListGroups retrieves the user's groups ordered by name.
func (s *MongoStore) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := s.groups.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storageErr("list groups", err)
	}

	var docs []groupDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("read groups", err)
	}

	groups := make([]*models.Group, 0, len(docs))
	for _, doc := range docs {
		groups = append(groups, doc.toModel())
	}
	return groups, nil
}

// UpdateGroup replaces the name and the member list of a group.
func (s *MongoStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.groups.UpdateOne(ctx, byUser(group.UserID, group.ID), bson.M{
		"$set": bson.M{"name": group.Name, "members": group.Members},
	})
	if err != nil {
		return storageErr("update group", err)
	}
	if res.MatchedCount == 0 {
		return notFound("group", group.ID)
	}
	return nil
}

// DeleteGroup removes a group and clears group_id on its transactions.
func (s *MongoStore) DeleteGroup(ctx context.Context, userID, groupID string) error {
	res, err := s.groups.DeleteOne(ctx, byUser(userID, groupID))
	if err != nil {
		return storageErr("delete group", err)
	}
	if res.DeletedCount == 0 {
		return notFound("group", groupID)
	}

	_, err = s.transactions.UpdateMany(ctx,
		bson.M{"user_id": userID, "group_id": groupID},
		bson.M{"$unset": bson.M{"group_id": ""}},
	)
	if err != nil {
		return storageErr("unlink group transactions", err)
	}
	return nil
}
